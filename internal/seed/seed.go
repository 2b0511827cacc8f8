// Package seed loads the demo board: one organizer, two taskers, the
// Honolulu Tech Week organization and a handful of tasks in every state.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/htw-hub/questboard-api/internal/models"
	"github.com/htw-hub/questboard-api/internal/repository"
	"github.com/htw-hub/questboard-api/internal/services"
	"gorm.io/gorm"
)

const OrganizerEmail = "organizer@htw.com"

// Summary reports what a seed run inserted
type Summary struct {
	Skipped       bool
	Users         int
	Organizations int
	Tasks         int
	Completions   int
}

type demoUser struct {
	key               string
	email             string
	firstName         string
	lastName          string
	role              models.UserRole
	skills            []string
	badges            []string
	profileCompletion int
}

type demoTask struct {
	title       string
	description string
	reward      int
	category    models.TaskCategory
	taskType    models.TaskType
	claimedBy   string
	completed   bool
}

var demoUsers = []demoUser{
	{
		key: "sarah", email: OrganizerEmail, firstName: "Sarah", lastName: "Johnson",
		role: models.RoleOrganizer, skills: []string{"Leadership", "Event Planning"},
		badges: []string{"Organizer"}, profileCompletion: 100,
	},
	{
		key: "mike", email: "tasker@htw.com", firstName: "Mike", lastName: "Chen",
		role: models.RoleTasker, skills: []string{"Design", "Marketing", "Development"},
		badges: []string{"Designer"}, profileCompletion: 85,
	},
	{
		key: "alex", email: "alex@htw.com", firstName: "Alex", lastName: "Rodriguez",
		role: models.RoleTasker, skills: []string{"Video Production", "Content Creation"},
		badges: []string{"Content Creator"}, profileCompletion: 90,
	},
}

// Completed tasks are replayed through the lifecycle so the ledger and the
// cached XP agree: Mike ends on 250 XP, Alex on 180.
var demoTasks = []demoTask{
	{
		title:       "Create HTW 2025 Promotional Graphics",
		description: "Design eye-catching promotional graphics for Honolulu Tech Week 2025. Include the official logo, event dates (March 15-20, 2025), and key themes. Graphics should be suitable for social media, website banners, and print materials.",
		reward:      75,
		category:    models.CategoryDesign,
		taskType:    models.TypeImageGeneration,
	},
	{
		title:       "Develop Workshop Marketing Campaign",
		description: "Create and execute a comprehensive marketing strategy for HTW 2025 workshops. This includes social media content, email campaigns, and partnership outreach to increase workshop attendance by 40%.",
		reward:      100,
		category:    models.CategoryMarketing,
		taskType:    models.TypeSocialMedia,
	},
	{
		title:       "Record Event Highlight Videos",
		description: "Film and edit short highlight videos showcasing the best moments from HTW 2025. Videos should be 30-60 seconds each, optimized for social media sharing, and capture the energy and innovation of the event.",
		reward:      150,
		category:    models.CategoryContentCreation,
		taskType:    models.TypeVideoCreation,
		claimedBy:   "alex",
	},
	{
		title:       "Build Community Engagement Platform",
		description: "Develop a web application that allows HTW attendees to connect, share ideas, and collaborate on projects. Features should include user profiles, project matching, and real-time chat functionality.",
		reward:      200,
		category:    models.CategoryDevelopment,
		taskType:    models.TypeCoding,
	},
	{
		title:       "Write Technical Documentation",
		description: "Create comprehensive documentation for HTW 2025 APIs and developer tools. Documentation should include setup guides, API references, code examples, and troubleshooting sections.",
		reward:      80,
		category:    models.CategoryContentCreation,
		taskType:    models.TypeWriting,
		claimedBy:   "mike",
		completed:   true,
	},
	{
		title:       "Organize Networking Event",
		description: "Plan and coordinate a networking mixer for HTW 2025 attendees. This includes venue selection, catering coordination, entertainment booking, and creating networking activities to facilitate meaningful connections.",
		reward:      120,
		category:    models.CategoryEventPrep,
		taskType:    models.TypeEventPlanning,
	},
	{
		title:       "Design Speaker Badge Templates",
		description: "Produce printable badge templates for speakers, sponsors and volunteers, matching the HTW 2025 brand guide.",
		reward:      170,
		category:    models.CategoryDesign,
		taskType:    models.TypeImageGeneration,
		claimedBy:   "mike",
		completed:   true,
	},
	{
		title:       "Edit Keynote Recap Video",
		description: "Cut a three minute recap of the opening keynote with captions and lower thirds for the YouTube channel.",
		reward:      180,
		category:    models.CategoryContentCreation,
		taskType:    models.TypeVideoCreation,
		claimedBy:   "alex",
		completed:   true,
	},
}

func strPtr(s string) *string {
	return &s
}

// Run inserts the demo data unless the organizer account already exists.
func Run(ctx context.Context, db *gorm.DB) (*Summary, error) {
	userRepo := repository.NewUserRepository(db)
	taskService := services.NewTaskService(repository.NewTaskRepository(db), userRepo)
	orgService := services.NewOrganizationService(repository.NewOrganizationRepository(db))

	if _, err := userRepo.FindByEmail(ctx, OrganizerEmail); err == nil {
		log.Printf("Seed data already present (%s exists), skipping", OrganizerEmail)
		return &Summary{Skipped: true}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for seed data: %w", err)
	}

	summary := &Summary{}
	ids := make(map[string]string, len(demoUsers))

	for _, u := range demoUsers {
		email := u.email
		user := &models.User{
			Email:             &email,
			FirstName:         u.firstName,
			LastName:          u.lastName,
			Role:              u.role,
			Skills:            u.skills,
			Badges:            u.badges,
			ProfileCompletion: u.profileCompletion,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", email, err)
		}
		ids[u.key] = user.ID
		summary.Users++
		log.Printf("Created user: %s", user.DisplayName())
	}

	org, err := orgService.CreateOrganization(ctx, services.CreateOrganizationInput{
		Name:            "Honolulu Tech Week 2025",
		Description:     strPtr("The premier technology conference in Hawaii, bringing together innovators, entrepreneurs, and tech enthusiasts from across the Pacific."),
		Website:         strPtr("https://honolulutechweek.com"),
		Location:        strPtr("Honolulu, HI"),
		Industry:        strPtr("technology"),
		Size:            models.SizeLarge,
		ContactInfo:     strPtr("info@honolulutechweek.com\nPhone: (808) 555-0123"),
		Mission:         strPtr("To foster innovation and collaboration in Hawaii's tech community while showcasing the islands as a hub for technology and entrepreneurship."),
		Goals:           strPtr("Create engaging content for HTW 2025, increase community participation, and showcase local tech talent through various tasks and challenges."),
		EventsOrganized: 5,
		SponsorLevel:    "platinum",
		CreatorID:       ids["sarah"],
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	summary.Organizations++
	log.Printf("Created organization: %s", org.Name)

	for _, t := range demoTasks {
		task, err := taskService.CreateTask(ctx, services.CreateTaskInput{
			Title:       t.title,
			Description: t.description,
			Reward:      t.reward,
			Category:    t.category,
			Type:        t.taskType,
			CreatorID:   ids["sarah"],
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create task %q: %w", t.title, err)
		}
		summary.Tasks++

		if t.claimedBy == "" {
			continue
		}
		assignee := ids[t.claimedBy]
		if _, err := taskService.ClaimTask(ctx, task.ID, assignee); err != nil {
			return nil, fmt.Errorf("failed to claim task %q: %w", t.title, err)
		}
		if !t.completed {
			continue
		}
		if _, err := taskService.CompleteTask(ctx, task.ID, assignee); err != nil {
			return nil, fmt.Errorf("failed to complete task %q: %w", t.title, err)
		}
		summary.Completions++
	}

	log.Printf("Seeded %d users, %d organizations, %d tasks (%d completed)",
		summary.Users, summary.Organizations, summary.Tasks, summary.Completions)
	return summary, nil
}
