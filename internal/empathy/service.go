package empathy

import (
	"context"
	"fmt"
	"strings"

	"moodgarden/internal/emotion"
	"moodgarden/internal/history"
	"moodgarden/internal/logging"
)

// Fallback strings, one per call site. Every failure path - missing key,
// network error, malformed response - resolves to one of these; callers never
// see a raw error.
const (
	FallbackRespond   = "你的心情已经落进花园里了，风会轻轻接住它。"
	FallbackChat      = "我在听着呢，只是这会儿信号有些微弱。再说一次好吗？"
	FallbackSummary   = "一座安静的花园"
	PlaceholderEmpty = "花园在等第一朵心情"
	summaryMaxRunes  = 15
)

const respondSystemPrompt = `你是情绪花园里一只温柔的花园精灵。
有人刚刚在花园里种下了一朵心情，你需要：
1.用一两句诗意、温暖的话回应这份心情
2.先共情，再给出一点点安放情绪的方式
3.不超过60字，禁用markdown格式
4.不要说教，不要列清单`

const chatSystemPrompt = `你是情绪花园里的花园精灵，陪来访者聊聊此刻的感受。
要求：
1.温柔、耐心，先倾听和共情
2.回复简短自然，像朋友之间说话，不超过100字
3.禁用markdown格式
4.不提供医疗诊断，严重情况温和建议寻求专业帮助`

const summarizeSystemPrompt = `下面是花园里此刻所有心情的标签。
请用一个不超过15个字的比喻描述花园整体的情绪氛围。
只输出比喻本身：不要引号，不要括号注释，不要任何markdown符号。`

// Service builds prompts for the three garden call sites and degrades every
// failure to a fixed fallback string.
type Service struct {
	client *Client
}

// NewService wraps a client.
func NewService(client *Client) *Service {
	return &Service{client: client}
}

// Respond returns a short empathetic reply to a freshly planted mood.
// It never returns an error.
func (s *Service) Respond(ctx context.Context, category emotion.Category, message string) string {
	if !s.client.HasKey() {
		logging.APIDebug("respond: no API key, using fallback")
		return FallbackRespond
	}

	prompt := fmt.Sprintf("心情：%s\n想说的话:%s", category.Label(), message)
	text, err := s.client.Generate(ctx, respondSystemPrompt, []Turn{{Role: "user", Text: prompt}})
	if err != nil || strings.TrimSpace(text) == "" {
		logging.APIError("respond failed, using fallback: %v", err)
		return FallbackRespond
	}
	return strings.TrimSpace(text)
}

// Chat continues the guide conversation. The full ordered turn history is
// supplied on every call; the service holds no session state. Never errors.
func (s *Service) Chat(ctx context.Context, turns []history.ChatMessage) string {
	if !s.client.HasKey() {
		logging.APIDebug("chat: no API key, using fallback")
		return FallbackChat
	}
	if len(turns) == 0 {
		return FallbackChat
	}

	wire := make([]Turn, len(turns))
	for i, t := range turns {
		role := "user"
		if t.Role == history.RoleAssistant {
			role = "model"
		}
		wire[i] = Turn{Role: role, Text: t.Text}
	}

	text, err := s.client.Generate(ctx, chatSystemPrompt, wire)
	if err != nil || strings.TrimSpace(text) == "" {
		logging.APIError("chat failed, using fallback: %v", err)
		return FallbackChat
	}
	return strings.TrimSpace(text)
}

// Summarize derives a short metaphorical caption for the collective mood
// from the current emotion labels. Empty input returns the placeholder
// without touching the service. Never errors.
func (s *Service) Summarize(ctx context.Context, labels []string) string {
	if len(labels) == 0 {
		return PlaceholderEmpty
	}
	if !s.client.HasKey() {
		logging.APIDebug("summarize: no API key, using fallback")
		return FallbackSummary
	}

	prompt := strings.Join(labels, "、")
	text, err := s.client.Generate(ctx, summarizeSystemPrompt, []Turn{{Role: "user", Text: prompt}})
	if err != nil {
		logging.APIError("summarize failed, using fallback: %v", err)
		return FallbackSummary
	}

	clean := Sanitize(text)
	if clean == "" {
		return FallbackSummary
	}
	runes := []rune(clean)
	if len(runes) > summaryMaxRunes {
		clean = string(runes[:summaryMaxRunes])
	}
	return clean
}
