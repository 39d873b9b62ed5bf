package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"github.com/sayafh/curriculum-chat/internal/config"
	"github.com/sayafh/curriculum-chat/internal/domain"
	"github.com/sayafh/curriculum-chat/internal/gateway"
)

// systemInstruction fixes the assistant persona, the two-section answer
// structure, the source-fidelity rule, and the attribution text.
const systemInstruction = `
أنت "المحاسب الذكي"، مساعد أكاديمي متخصص لطلاب المحاسبة.
مهمتك الأساسية هي الإجابة على أسئلة الطلاب بناءً على ملف المادة المرفق.

قواعد العمل الصارمة:
1. التركيز الموضوعي: إذا حدد الطالب "فصلاً" معيناً، ابحث أولاً في ذلك الفصل داخل الملف المرفق لتقديم الإجابة الأكثر دقة وسرعة.
2. المصدر الوحيد: اعتمد كلياً على النصوص الموجودة في الملف المرفق.
3. هيكلية الإجابة: يجب أن ينقسم ردك دائماً إلى قسمين:
   - [نص المنهج]: اقتبس هنا النص كما ورد في الكتاب حرفياً (يفضل الجزء المتعلق بالفصل المحدد).
   - [شرح المحاسب الذكي]: قدم شرحاً مبسطاً بأسلوبك، مع أمثلة عملية وجداول محاسبية (مدين/دائن).
4. الحقوق: تذكر دائماً أن هذا التطبيق هو مبادرة من "سياف الحاتمي مندوب الدفعة التاسعة محاسبة".
5. تنبيه الحجم: إذا كان الملف كبيراً جداً، حاول استخلاص المعلومات الأساسية بذكاء.
`

// Provider implements gateway.Gateway against the Gemini API.
type Provider struct {
	apiKey      string
	model       string
	temperature float32
	timeout     time.Duration
}

func NewProvider(cfg config.GeminiConfig) *Provider {
	return &Provider{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
}

func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

func (p *Provider) DefaultModel() string {
	if p.model != "" {
		return p.model
	}
	return "gemini-2.5-flash"
}

// Ask sends the question, prior transcript, and inlined document to Gemini
// and returns the reply text verbatim.
func (p *Provider) Ask(ctx context.Context, req gateway.AskRequest) (string, error) {
	if !p.IsConfigured() {
		return "", fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.DefaultModel())
	temperature := p.temperature
	model.Temperature = &temperature
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	chat := model.StartChat()
	chat.History = BuildHistory(req.History)

	start := time.Now()
	resp, err := chat.SendMessage(ctx, BuildParts(req)...)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return "", mapError(ctx, err)
	}

	text := collectText(resp)
	if text == "" {
		return "", fmt.Errorf("empty response from gemini")
	}

	log.Debug().
		Int64("latency_ms", latency).
		Int("history_turns", len(req.History)).
		Msg("gemini reply received")

	return text, nil
}

// BuildHistory maps transcript turns to Gemini content. Assistant turns use
// the "model" role expected by the API.
func BuildHistory(turns []gateway.Turn) []*genai.Content {
	history := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := "user"
		if t.Role == domain.RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(t.Content)},
		})
	}
	return history
}

// BuildParts assembles the current turn: the question prefixed with the
// chapter-focus hint when one is set, followed by the inlined document.
func BuildParts(req gateway.AskRequest) []genai.Part {
	question := req.Question
	if req.ChapterFocus != "" {
		question = fmt.Sprintf("(يرجى التركيز على: %s) %s", req.ChapterFocus, req.Question)
	}

	parts := []genai.Part{genai.Text(question)}
	if req.Document != nil {
		parts = append(parts, genai.Blob{
			MIMEType: req.Document.MediaType,
			Data:     req.Document.Data,
		})
	}
	return parts
}

func mapError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return domain.ErrGatewayTimeout
	}

	msg := err.Error()
	if strings.Contains(msg, "exceeds supported limit") ||
		strings.Contains(msg, "413") ||
		strings.Contains(msg, "Request Entity Too Large") {
		return domain.ErrGatewayOversize
	}

	return fmt.Errorf("gemini generation error: %w", err)
}

func collectText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	return out
}
