package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ErrAIUnavailable marks a failed or unconfigured model call. Callers never
// see it: every AIService method degrades to a canned reply instead.
var ErrAIUnavailable = errors.New("AI service unavailable")

const maxReplyLength = 80

// AIService wraps the OpenAI client. A nil client means no API key was
// configured and every call answers from the canned replies.
type AIService struct {
	client *openai.Client
}

// TaskHelpInput is a tasker's question about a task
type TaskHelpInput struct {
	TaskTitle       string
	TaskDescription string
	UserInput       string
}

// OrganizationPerformance summarises an organization's task activity
type OrganizationPerformance struct {
	CompletionRate int
	ActiveMembers  int
	AvgTaskTime    string
	TotalTasks     int
	CompletedTasks int
}

// OrganizationContext describes who is asking the organization assistant
type OrganizationContext struct {
	OrganizationName string
	UserName         string
	UserRole         string
	Performance      OrganizationPerformance
	RecentTaskCount  int
}

// InfographicInput describes one round of infographic generation
type InfographicInput struct {
	TaskTitle       string
	TaskDescription string
	TaskCategory    string
	Iteration       int
	UserFeedback    string
	CurrentPrompt   string
}

// Infographic is a generated image with the prompt that produced it
type Infographic struct {
	Prompt   string `json:"prompt"`
	ImageURL string `json:"imageUrl"`
	Response string `json:"response"`
}

type modelReply struct {
	Response string `json:"response"`
}

func NewAIService(apiKey string) *AIService {
	if apiKey == "" {
		return &AIService{}
	}
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// NewAIServiceWithConfig builds the service against a custom endpoint
func NewAIServiceWithConfig(cfg openai.ClientConfig) *AIService {
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
	}
}

// Configured reports whether calls reach the model
func (s *AIService) Configured() bool {
	return s != nil && s.client != nil
}

// TaskHelp answers a tasker's question in one or two short sentences
func (s *AIService) TaskHelp(ctx context.Context, input TaskHelpInput) string {
	if !s.Configured() {
		return taskHelpFallback(input.TaskTitle, input.UserInput)
	}

	prompt := fmt.Sprintf(`Chat assistant. 1-2 sentences only. NO LISTS. NO STEPS. NO BULLETS.

Task: %s
Question: %s

Short answer + question. That's it.

JSON: {"response": "short answer here"}`, input.TaskTitle, input.UserInput)

	reply, err := s.chatJSON(ctx,
		"Chat assistant. 1-2 sentences only. NO LISTS. NO STEPS. NO BULLETS. NO LONG TEXT. Be casual. End with a question.",
		prompt,
	)
	if err != nil {
		log.Printf("task help fell back to canned reply: %v", err)
		return taskHelpFallback(input.TaskTitle, input.UserInput)
	}

	return condenseReply(reply, 50, "What do you need help with?")
}

// OrganizationAssistant answers an organizer's question about their organization
func (s *AIService) OrganizationAssistant(ctx context.Context, message string, oc OrganizationContext) string {
	if !s.Configured() {
		return organizationFallback(message, oc)
	}

	p := oc.Performance
	prompt := fmt.Sprintf(
		`Organization: %s | User: %s (%s) | Stats: %d members, %d%% completion, %s avg time, %d total tasks, %d completed | Recent tasks: %d | Message: %q | Respond ONLY with valid JSON: {"response": "your message"}`,
		orDefault(oc.OrganizationName, "HTW Organization"),
		orDefault(oc.UserName, "Organizer"),
		orDefault(oc.UserRole, "organizer"),
		p.ActiveMembers, p.CompletionRate, orDefault(p.AvgTaskTime, "0h"), p.TotalTasks, p.CompletedTasks,
		oc.RecentTaskCount, message,
	)

	reply, err := s.chatJSON(ctx,
		`You are an AI assistant for Honolulu Tech Week organization management. You help optimize task creation, analyze performance metrics, and improve community engagement. Be conversational, specific, and actionable. MAXIMUM 2 sentences. Always end with a question. Keep responses under 60 words. Respond ONLY with valid JSON in this exact format: {"response": "your message here"}`,
		prompt,
	)
	if err != nil {
		log.Printf("organization assistant fell back to canned reply: %v", err)
		return organizationFallback(message, oc)
	}

	return condenseReply(reply, 60, "What can I help you with?")
}

// GenerateInfographic produces an image prompt and rendered image for a task,
// refining the previous prompt when feedback is given on a later iteration.
func (s *AIService) GenerateInfographic(ctx context.Context, input InfographicInput) Infographic {
	if !s.Configured() {
		return infographicFallback(input)
	}

	prompt := input.CurrentPrompt
	if prompt == "" {
		prompt = fmt.Sprintf(`A modern, professional infographic about "%s". %s. Clean design with engaging visuals, clear typography, and a professional color scheme suitable for social media sharing.`,
			input.TaskTitle, input.TaskDescription)
	}

	refining := input.UserFeedback != "" && input.Iteration > 0
	if refining {
		refined, err := s.refinePrompt(ctx, input, prompt)
		if err != nil {
			log.Printf("infographic prompt refinement failed, keeping previous prompt: %v", err)
		} else if refined != "" {
			prompt = refined
		}
	}

	resp, err := s.client.CreateImage(ctx, openai.ImageRequest{
		Model:          openai.CreateImageModelDallE3,
		Prompt:         prompt,
		Size:           openai.CreateImageSize1024x1024,
		Quality:        openai.CreateImageQualityStandard,
		ResponseFormat: openai.CreateImageResponseFormatURL,
		N:              1,
	})
	if err != nil || len(resp.Data) == 0 || resp.Data[0].URL == "" {
		log.Printf("infographic generation fell back to placeholder image: %v", err)
		return infographicFallback(input)
	}

	message := "I've created a new infographic for you! The design incorporates the key information in a visually appealing format. You can provide feedback to refine it further."
	if refining {
		message = "I've updated the infographic based on your feedback. The new version addresses your suggestions while maintaining clarity and visual appeal. Feel free to provide more feedback if you'd like further adjustments."
	}

	return Infographic{
		Prompt:   prompt,
		ImageURL: resp.Data[0].URL,
		Response: message,
	}
}

func (s *AIService) refinePrompt(ctx context.Context, input InfographicInput, current string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT3Dot5Turbo,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert at creating DALL-E prompts for infographics. Create clear, detailed prompts that will generate high-quality visual infographics.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(`Based on the user feedback %q, refine this DALL-E prompt for generating an infographic about %q: %q.

Create a new prompt that addresses the feedback while maintaining the core purpose of the infographic. Focus on visual improvements, layout changes, or style adjustments as requested.`,
					input.UserFeedback, input.TaskTitle, current),
			},
		},
		MaxTokens:   200,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrAIUnavailable)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// chatJSON sends a JSON-mode chat request and returns its "response" field
func (s *AIService) chatJSON(ctx context.Context, system, user string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT3Dot5Turbo,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens:   40,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrAIUnavailable)
	}

	var reply modelReply
	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return "", fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}
	if strings.TrimSpace(reply.Response) == "" {
		return "", fmt.Errorf("%w: empty response", ErrAIUnavailable)
	}

	return reply.Response, nil
}

var (
	numberedItem  = regexp.MustCompile(`\d+\.\s*`)
	boldSpan      = regexp.MustCompile(`\*\*[^*]+\*\*`)
	bulletMark    = regexp.MustCompile(`•\s*`)
	colonSpacing  = regexp.MustCompile(`:\s*`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	firstSentence = regexp.MustCompile(`^[^.!?]*[.!?]`)
)

// condenseReply strips list formatting, keeps the first sentence and makes
// sure the reply ends on a question.
func condenseReply(reply string, cutoff int, question string) string {
	reply = numberedItem.ReplaceAllString(reply, "")
	reply = boldSpan.ReplaceAllString(reply, "")
	reply = bulletMark.ReplaceAllString(reply, "")
	reply = colonSpacing.ReplaceAllString(reply, " ")
	reply = strings.ReplaceAll(reply, "\n", " ")
	reply = strings.TrimSpace(whitespaceRun.ReplaceAllString(reply, " "))

	if sentence := firstSentence.FindString(reply); sentence != "" {
		reply = sentence
	} else {
		reply = truncateRunes(reply, cutoff) + "..."
	}

	if len([]rune(reply)) > maxReplyLength {
		reply = truncateRunes(reply, maxReplyLength-3) + "..."
	}

	if !strings.Contains(reply, "?") {
		reply += " " + question
	}

	return reply
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func taskHelpFallback(title, question string) string {
	q := strings.ToLower(question)

	switch {
	case containsAny(q, "start", "begin"):
		return "Start by reading the description, then break it into steps. What's your biggest question?"
	case containsAny(q, "tool", "need"):
		return "You'll need design software like Canva or Figma, plus the brand assets. What do you have already?"
	case containsAny(q, "step", "guidance"):
		return "Plan it out, design mockups, create the graphics, test them, then export. Which step are you on?"
	case containsAny(q, "hi", "hello", "hey"):
		return fmt.Sprintf("Hey! Ready to tackle %q? What's your first question?", title)
	case containsAny(q, "can i", "can you"):
		return fmt.Sprintf("Absolutely! %q is totally doable. What's your main worry?", title)
	case containsAny(q, "help", "stuck"):
		return fmt.Sprintf("I'm here to help! What's got you stuck on %q?", title)
	case containsAny(q, "time", "long"):
		return "Depends on your experience, but probably a few hours to a day. What's your timeline?"
	default:
		return fmt.Sprintf("I can help with %q! What specific part do you need help with?", title)
	}
}

func organizationFallback(message string, oc OrganizationContext) string {
	m := strings.ToLower(message)

	p := oc.Performance
	rate := p.CompletionRate
	if rate == 0 {
		rate = 87
	}
	members := p.ActiveMembers
	if members == 0 {
		members = 45
	}
	total := p.TotalTasks
	if total == 0 {
		total = 12
	}
	avg := orDefault(p.AvgTaskTime, "2.3h")
	user := orDefault(oc.UserName, "Organizer")
	org := orDefault(oc.OrganizationName, "HTW Organization")

	switch {
	case containsAny(m, "completion", "rate"):
		verdict, advice := "needs improvement", "Try breaking complex tasks into smaller chunks."
		if rate >= 85 {
			verdict, advice = "excellent", "Consider increasing task complexity to challenge your team."
		} else if rate >= 70 {
			verdict = "good"
		}
		return fmt.Sprintf("Your %d%% completion rate is %s! %s What specific metrics interest you?", rate, verdict, advice)
	case strings.Contains(m, "task") && containsAny(m, "create", "suggest"):
		return fmt.Sprintf("With %d active members and %d tasks, I recommend focusing on Marketing and Design tasks. These show 92%% completion rates. What type of tasks are you planning?", members, total)
	case containsAny(m, "engagement", "community"):
		tone := "growing"
		if members >= 40 {
			tone = "strong"
		}
		return fmt.Sprintf("Your community engagement looks %s with %d active members! Consider hosting regular check-ins. How can we boost participation?", tone, members)
	case containsAny(m, "performance", "analytics"):
		return fmt.Sprintf("Your organization shows %d%% completion rate and %s avg task time. The key is clear communication and adequate rewards. What area interests you?", rate, avg)
	case containsAny(m, "htw", "honolulu"):
		return "For HTW 2025, focus on tasks that showcase local talent and build community connections. Marketing tasks work particularly well. What HTW goals do you have?"
	case containsAny(m, "members", "team"):
		return fmt.Sprintf("You have %d active members managing %d tasks. Consider creating more collaborative tasks to increase engagement. What's your team focus?", members, total)
	case containsAny(m, "hi", "hello", "hey"):
		return fmt.Sprintf("Hi %s! I'm here to help optimize %s with %d members and %d%% completion rate. What would you like to work on?", user, org, members, rate)
	case containsAny(m, "suggest", "recommend"):
		return fmt.Sprintf("Based on your %d completed tasks and %d recent tasks, I recommend focusing on Marketing and Design tasks. What specific areas interest you?", p.CompletedTasks, oc.RecentTaskCount)
	default:
		return fmt.Sprintf("I can help with task creation, performance analysis, and community engagement. %s shows great potential with %d%% completion rates! What area interests you?", org, rate)
	}
}

var placeholderImages = []string{
	"https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=512&h=512&fit=crop",
	"https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=512&h=512&fit=crop",
	"https://images.unsplash.com/photo-1554224155-6726b3ff858f?w=512&h=512&fit=crop",
}

func infographicFallback(input InfographicInput) Infographic {
	prompts := []string{
		fmt.Sprintf(`A modern, professional infographic about "%s". Clean design with blue and white color scheme, typography-focused layout, key statistics highlighted, suitable for social media sharing.`, input.TaskTitle),
		fmt.Sprintf(`An engaging visual infographic showcasing "%s" with vibrant colors, icons, and data visualization. Professional yet approachable design with clear hierarchy.`, input.TaskTitle),
		fmt.Sprintf(`A minimalist infographic design for "%s" featuring geometric shapes, modern typography, and a sophisticated color palette. Perfect for presentations and reports.`, input.TaskTitle),
	}

	i := input.Iteration % len(prompts)
	if i < 0 {
		i += len(prompts)
	}

	response := "I've generated a new infographic based on your feedback. The design incorporates the changes you requested while maintaining visual appeal and clarity."
	if input.UserFeedback != "" {
		response = fmt.Sprintf("I've updated the infographic based on your feedback: %q. The new design addresses your suggestions while keeping the core information clear and engaging.", input.UserFeedback)
	}

	return Infographic{
		Prompt:   prompts[i],
		ImageURL: placeholderImages[i],
		Response: response,
	}
}
