package service

import (
	"context"
	"feelio_backend/internal/model"
	"fmt"
	"strings"
)

const feedbackSystemPrompt = "Kamu adalah mentor ramah yang membimbing anak-anak dengan sabar."

// FeedbackRequest 生成反馈所需的上下文
type FeedbackRequest struct {
	Answer           string   `json:"answer"`
	ExpectedEmotions []string `json:"expected_emotions"`
	IsCorrect        bool     `json:"is_correct"`
	Narrative        string   `json:"narrative"`
	Segment          string   `json:"segment"`
	FollowUp         bool     `json:"followup"`
}

// FeedbackService 用大模型为孩子生成 2-3 句印尼语反馈
type FeedbackService struct {
	AI *AIService
}

func NewFeedbackService(ai *AIService) *FeedbackService {
	return &FeedbackService{AI: ai}
}

// Generate 10-12 岁组只有在追问（followup）时才生成反馈，否则返回 nil
func (s *FeedbackService) Generate(ctx context.Context, req FeedbackRequest) (*string, error) {
	segment := req.Segment
	if segment == "" {
		segment = model.SegmentYounger.Label()
	}
	if segment == model.SegmentOlder.Label() && !req.FollowUp {
		return nil, nil
	}

	feedback, err := s.AI.Chat(ctx, []AIChatMessage{
		{Role: "system", Content: feedbackSystemPrompt},
		{Role: "user", Content: buildFeedbackPrompt(req)},
	})
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func buildFeedbackPrompt(req FeedbackRequest) string {
	verdict := "belum tepat"
	if req.IsCorrect {
		verdict = "benar"
	}

	var b strings.Builder
	b.WriteString("Kamu adalah mentor untuk anak usia 7-12 tahun. Tugasmu adalah memberikan umpan balik positif dan edukatif agar anak bisa mengenali emosi dengan lebih baik.\n\n")
	fmt.Fprintf(&b, "Cerita yang dibaca anak adalah:\n%q\n\n", req.Narrative)
	fmt.Fprintf(&b, "Jawaban anak: %q\n\n", req.Answer)
	fmt.Fprintf(&b, "Jawaban ini dianggap %s dalam mengenali emosi yang muncul dalam cerita.\n\n", verdict)
	fmt.Fprintf(&b, "Emosi yang diharapkan muncul dari cerita ini: %s.\n\n", strings.Join(req.ExpectedEmotions, ", "))
	b.WriteString("Buatlah umpan balik singkat dalam 2-3 kalimat yang:\n")
	b.WriteString("- Ramah dan mendukung\n")
	b.WriteString("- Sesuai dengan konteks cerita dan jawaban anak\n")
	b.WriteString("- Tidak menggunakan istilah teknis atau bahasa sulit\n")
	b.WriteString("- Dalam bahasa Indonesia\n")
	b.WriteString("- Berikan saran apa yang bisa mereka lakukan untuk membantu sesuai dengan konteks cerita\n\n")
	b.WriteString("Jawabanmu akan langsung dibaca oleh anak tersebut.")
	return b.String()
}
