// Package advisor produces sales advice from the inference service. Every call degrades to
// a fixed Vietnamese fallback instead of failing.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

const (
	motivationFallback   = "Gặp sự cố khi kết nối AI. Hãy luôn giữ tinh thần lạc quan nhé!"
	invalidBirthYearText = "Vui lòng nhập năm sinh hợp lệ."
	colorAdviceFallback  = "Không thể lấy dữ liệu phong thủy lúc này."
)

// Suggestion is structured advice for a customer who hasn't bought yet
type Suggestion struct {
	Analysis             string   `json:"analysis"`
	ConsultingStrategies []string `json:"consultingStrategies"`
	PromotionIdeas       []string `json:"promotionIdeas"`
}

// MockSuggestion is returned whenever inference fails
var MockSuggestion = Suggestion{
	Analysis: "Khách hàng có thể đang gặp rào cản về tài chính hoặc cần thêm thông tin để so sánh và ra quyết định. Họ là người cẩn trọng.",
	ConsultingStrategies: []string{
		"Đồng cảm với lo ngại của khách hàng về giá.",
		"Phân tích chi tiết lợi ích dài hạn của xe: tiết kiệm xăng, độ bền, chi phí bảo dưỡng thấp.",
		"Giới thiệu chương trình trả góp 0% hoặc các gói vay ưu đãi.",
	},
	PromotionIdeas: []string{
		"Tặng gói bảo dưỡng miễn phí 1 năm.",
		"Giảm giá trực tiếp trên phụ kiện đi kèm (mũ bảo hiểm, áo mưa).",
		"Tặng voucher mua sắm tại cửa hàng.",
	},
}

var suggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"analysis": {
			Type:        genai.TypeString,
			Description: "Phân tích ngắn gọn về tâm lý hoặc rào cản của khách hàng.",
		},
		"consultingStrategies": {
			Type:        genai.TypeArray,
			Description: "Các chiến lược, cách nói chuyện cụ thể để nhân viên tư vấn áp dụng.",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
		"promotionIdeas": {
			Type:        genai.TypeArray,
			Description: "Các ý tưởng khuyến mãi, ưu đãi phù hợp để thuyết phục khách hàng.",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
	},
}

// Service builds prompts and parses inference responses
type Service struct {
	gen Generator
}

// NewService builds advisor service, nil generator makes every call return its fallback
func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

// SalesSuggestions analyses why customer didn't buy and proposes strategies and promotions
func (s *Service) SalesSuggestions(ctx context.Context, reason string) Suggestion {
	prompt := fmt.Sprintf(`Một khách hàng đang cân nhắc mua xe máy Honda nhưng chưa chốt vì lý do sau: "%s".
Hãy phân tích tâm lý khách hàng và đưa ra đề xuất cho nhân viên tư vấn. Trả lời bằng tiếng Việt.`, reason)

	text, err := s.generate(ctx, prompt, suggestionSchema)
	if err != nil {
		logrus.Warnf("failed to fetch sales suggestions - %v", err)
		return MockSuggestion
	}

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(text), &suggestion); err != nil {
		logrus.Warnf("failed to parse sales suggestions - %v", err)
		return MockSuggestion
	}

	if suggestion.ConsultingStrategies == nil {
		suggestion.ConsultingStrategies = []string{}
	}
	if suggestion.PromotionIdeas == nil {
		suggestion.PromotionIdeas = []string{}
	}
	return suggestion
}

// DailyMotivation returns short motivating text for a sales person
func (s *Service) DailyMotivation(ctx context.Context) string {
	prompt := "Đưa ra một lời khuyên hoặc nhận định ngắn gọn (2-3 câu) về ngày hôm nay cho một nhân viên bán hàng xe máy. " +
		"Giọng văn tích cực, tạo động lực. Trả lời bằng tiếng Việt."

	text, err := s.generate(ctx, prompt, nil)
	if err != nil {
		logrus.Warnf("failed to fetch daily motivation - %v", err)
		return motivationFallback
	}
	return text
}

// ColorAdvice recommends motorcycle colors by five elements for birth year
func (s *Service) ColorAdvice(ctx context.Context, birthYear string) string {
	year, ok := parseYear(birthYear)
	if !ok {
		return invalidBirthYearText
	}

	prompt := fmt.Sprintf("Dựa vào phong thủy ngũ hành, người sinh năm %d hợp với những màu sắc nào nhất khi mua xe? "+
		"Giải thích ngắn gọn tại sao. Trả lời bằng tiếng Việt.", year)

	text, err := s.generate(ctx, prompt, nil)
	if err != nil {
		logrus.Warnf("failed to fetch color advice for %d - %v", year, err)
		return colorAdviceFallback
	}
	return text
}

func (s *Service) generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	if s.gen == nil {
		return "", fmt.Errorf("inference service is not configured")
	}
	return s.gen.Generate(ctx, prompt, schema)
}

// parseYear accepts leading integer like "1990" or "1990 (Canh Ngọ)"
func parseYear(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)

	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}

	if end == 0 {
		return 0, false
	}

	year, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0, false
	}
	return year, true
}
