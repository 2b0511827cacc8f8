package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAIService(t *testing.T, handler http.HandlerFunc) *AIService {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return NewAIServiceWithConfig(cfg)
}

func chatResponse(t *testing.T, w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]interface{}{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1,
		"model":   openai.GPT3Dot5Turbo,
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]string{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	})
	require.NoError(t, err)
}

func TestTaskHelp_FallbackWithoutClient(t *testing.T) {
	ai := NewAIService("")
	ctx := context.Background()

	assert.False(t, ai.Configured())

	tests := []struct {
		question string
		want     string
	}{
		{"How do I start?", "Start by reading the description"},
		{"What tools do I need", "Canva or Figma"},
		{"hello there", `Ready to tackle "Banner"?`},
		{"I'm stuck", `What's got you stuck on "Banner"?`},
		{"How long does it take", "few hours to a day"},
		{"???", `I can help with "Banner"!`},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			reply := ai.TaskHelp(ctx, TaskHelpInput{TaskTitle: "Banner", UserInput: tt.question})
			assert.Contains(t, reply, tt.want)
		})
	}
}

func TestOrganizationAssistant_FallbackUsesContext(t *testing.T) {
	ai := NewAIService("")
	ctx := context.Background()

	reply := ai.OrganizationAssistant(ctx, "How is our completion rate?", OrganizationContext{
		Performance: OrganizationPerformance{CompletionRate: 72},
	})
	assert.Equal(t, "Your 72% completion rate is good! Try breaking complex tasks into smaller chunks. What specific metrics interest you?", reply)

	reply = ai.OrganizationAssistant(ctx, "hello", OrganizationContext{
		OrganizationName: "Honolulu Tech Week 2025",
		UserName:         "Sarah",
	})
	assert.Equal(t, "Hi Sarah! I'm here to help optimize Honolulu Tech Week 2025 with 45 members and 87% completion rate. What would you like to work on?", reply)
}

func TestGenerateInfographic_FallbackCyclesByIteration(t *testing.T) {
	ai := NewAIService("")
	ctx := context.Background()

	first := ai.GenerateInfographic(ctx, InfographicInput{TaskTitle: "Launch", Iteration: 0})
	fourth := ai.GenerateInfographic(ctx, InfographicInput{TaskTitle: "Launch", Iteration: 3})
	second := ai.GenerateInfographic(ctx, InfographicInput{TaskTitle: "Launch", Iteration: 1, UserFeedback: "more blue"})

	assert.Equal(t, first, fourth)
	assert.NotEqual(t, first.ImageURL, second.ImageURL)
	assert.Contains(t, first.Prompt, `"Launch"`)
	assert.Contains(t, second.Response, `"more blue"`)
}

func TestTaskHelp_CondensesModelReply(t *testing.T) {
	ai := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		chatResponse(t, w, `{"response": "1. **Plan** first: sketch the layout. Then pick colors."}`)
	})

	reply := ai.TaskHelp(context.Background(), TaskHelpInput{TaskTitle: "Banner", UserInput: "tips?"})
	assert.Equal(t, "first sketch the layout. What do you need help with?", reply)
}

func TestTaskHelp_FallsBackOnAPIError(t *testing.T) {
	ai := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	reply := ai.TaskHelp(context.Background(), TaskHelpInput{TaskTitle: "Banner", UserInput: "help"})
	assert.Equal(t, `I'm here to help! What's got you stuck on "Banner"?`, reply)
}

func TestGenerateInfographic_UsesImageAPI(t *testing.T) {
	ai := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/chat/completions":
			chatResponse(t, w, "A bold blue infographic about Launch")
		case "/v1/images/generations":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"created": 1, "data": [{"url": "https://img.example/launch.png"}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	out := ai.GenerateInfographic(context.Background(), InfographicInput{
		TaskTitle:     "Launch",
		Iteration:     1,
		UserFeedback:  "more blue",
		CurrentPrompt: "An infographic about Launch",
	})

	assert.Equal(t, "https://img.example/launch.png", out.ImageURL)
	assert.Equal(t, "A bold blue infographic about Launch", out.Prompt)
	assert.True(t, strings.HasPrefix(out.Response, "I've updated the infographic"))
}

func TestCondenseReply(t *testing.T) {
	assert.Equal(t, "Sounds good! Q?", condenseReply("Sounds good! Anything else", 50, "Q?"))

	long := strings.Repeat("word ", 30) + "end."
	out := condenseReply(long, 50, "What next?")
	assert.LessOrEqual(t, len([]rune(strings.TrimSuffix(out, " What next?"))), maxReplyLength)
	assert.True(t, strings.HasSuffix(out, "... What next?"))

	noStop := condenseReply("keep going with this", 50, "Right?")
	assert.Equal(t, "keep going with this... Right?", noStop)

	asked := condenseReply("Ready to go?", 50, "Right?")
	assert.Equal(t, "Ready to go?", asked)
}
