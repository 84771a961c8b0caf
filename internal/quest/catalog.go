package quest

import "fmt"

// Definition is the static presentation of a quest category.
type Definition struct {
	Title    string
	Icon     string
	Keywords []string
	Tips     []string
}

// catalog covers both the conversation-skill categories and the checklist
// categories the evaluator grades.
var catalog = map[string]Definition{
	"symptom_description": {
		Title:    "증상을 구체적으로 설명하기",
		Icon:     "📋",
		Keywords: []string{"증상", "어디가", "어떻게", "얼마나", "구체적"},
		Tips: []string{
			`증상의 구체적인 위치를 말하세요 (예: "오른쪽 복부 아래쪽")`,
			`증상의 강도를 설명하세요 (예: "찌르는 듯한 통증")`,
			"증상이 언제부터 시작되었는지 말하세요",
			"증상이 지속되는 시간을 구체적으로 말하세요",
		},
	},
	"medical_history": {
		Title:    "과거 병력과 알레르기 말하기",
		Icon:     "🏥",
		Keywords: []string{"과거", "알레르기", "병력", "만성", "수술"},
		Tips:     historyTips,
	},
	"medication_info": {
		Title:    "복용 중인 약물 언급하기",
		Icon:     "💊",
		Keywords: []string{"약", "복용", "처방", "투약", "현재"},
		Tips:     medicationTips,
	},
	"symptom_location": {
		Title:    "증상의 정확한 위치 말하기",
		Icon:     "📍",
		Keywords: []string{"머리", "배", "가슴", "목", "팔", "다리", "위치"},
		Tips: []string{
			"증상이 나타나는 정확한 부위를 말하세요",
			"통증이 퍼지는지, 어디로 퍼지는지 설명하세요",
			"압박했을 때 통증이 심해지는지 말하세요",
			"특정 자세나 움직임에 따라 증상이 변하는지 설명하세요",
		},
	},
	"symptom_timing": {
		Title:    "증상의 시작 시기와 지속 시간 말하기",
		Icon:     "⏰",
		Keywords: []string{"언제", "시작", "부터", "지속", "시간", "기간"},
		Tips: []string{
			"증상이 언제부터 시작되었는지 구체적으로 말하세요",
			"증상이 지속되는 시간을 말하세요",
			"증상이 하루 중 언제 심해지는지 설명하세요",
			"증상이 점진적으로 심해졌는지, 갑자기 시작되었는지 말하세요",
		},
	},
	"communication_clarity": {
		Title:    "명확하고 이해하기 쉽게 설명하기",
		Icon:     "💬",
		Keywords: []string{"명확", "이해", "설명", "자세히"},
		Tips: []string{
			"의학 용어보다는 일상적인 표현을 사용하세요",
			"증상을 구체적이고 명확하게 설명하세요",
			"의사의 질문에 정확하게 답변하세요",
			"이해가 안 되는 부분은 다시 질문하세요",
		},
	},
	"question_asking": {
		Title:    "의사에게 적절한 질문하기",
		Icon:     "❓",
		Keywords: []string{"질문", "궁금", "알고", "확인"},
		Tips: []string{
			"진단에 대해 구체적으로 질문하세요",
			"치료 방법에 대해 자세히 물어보세요",
			"약물의 부작용에 대해 확인하세요",
			"생활에서 주의할 점을 물어보세요",
		},
	},
	"follow_up": {
		Title:    "의사의 설명에 대한 확인과 추가 질문하기",
		Icon:     "🔄",
		Keywords: []string{"추가", "더", "그리고", "또한", "확인"},
		Tips: []string{
			"의사의 설명을 듣고 이해한 내용을 확인하세요",
			"추가로 궁금한 점이 있으면 물어보세요",
			"치료 후 예상되는 경과를 물어보세요",
			"재검사나 후속 조치가 필요한지 확인하세요",
		},
	},
	"symptom_severity": {
		Title:    "증상의 강도 말하기",
		Icon:     "🌡️",
		Keywords: []string{"심해", "강도", "정도", "참을"},
		Tips: []string{
			"통증을 10점 만점으로 표현해보세요",
			`통증의 양상을 말하세요 (예: "쑤시는", "찌르는")`,
			"일상생활에 지장이 있는지 말하세요",
			"증상이 점점 심해지는지 말하세요",
		},
	},
	"current_medication": {
		Title:    "복용 중인 약물 언급하기",
		Icon:     "💊",
		Keywords: []string{"약", "복용", "처방", "투약", "현재"},
		Tips:     medicationTips,
	},
	"allergy_info": {
		Title:    "알레르기 여부 말하기",
		Icon:     "🏥",
		Keywords: []string{"알레르기", "과민", "두드러기", "부작용"},
		Tips:     historyTips,
	},
	"diagnosis_info": {
		Title:    "진단명과 진단 근거 확인하기",
		Icon:     "🩺",
		Keywords: []string{"진단", "병명", "원인", "근거", "검사"},
		Tips: []string{
			"진단명을 정확히 다시 물어보세요",
			"왜 그렇게 진단했는지 근거를 물어보세요",
			"추가 검사가 필요한지 확인하세요",
		},
	},
	"prescription_info": {
		Title:    "처방약의 이름과 복용 방법 확인하기",
		Icon:     "📝",
		Keywords: []string{"처방", "하루", "식후", "식전", "몇 번", "복용법"},
		Tips: []string{
			"처방약의 이름을 확인하세요",
			"하루에 몇 번, 언제 먹는지 확인하세요",
			"언제까지 복용해야 하는지 물어보세요",
		},
	},
	"side_effects": {
		Title:    "약의 부작용과 주의사항 확인하기",
		Icon:     "⚠️",
		Keywords: []string{"부작용", "주의", "조심", "술", "운전"},
		Tips: []string{
			"약의 부작용을 물어보세요",
			"함께 먹으면 안 되는 음식이나 약을 확인하세요",
			"부작용이 생기면 어떻게 해야 하는지 물어보세요",
		},
	},
	"followup_plan": {
		Title:    "다음 진료 계획 확인하기",
		Icon:     "📅",
		Keywords: []string{"다음", "재방문", "예약", "언제 다시", "경과"},
		Tips: []string{
			"다음 진료 날짜를 확인하세요",
			"재방문 전까지 지켜볼 점을 물어보세요",
			"검사 결과는 언제 나오는지 확인하세요",
		},
	},
	"emergency_plan": {
		Title:    "증상 악화 시 대처 방법 확인하기",
		Icon:     "🚑",
		Keywords: []string{"악화", "응급", "심해지면", "바로", "즉시"},
		Tips: []string{
			"어떤 증상이 생기면 바로 와야 하는지 물어보세요",
			"야간이나 주말에는 어디로 가야 하는지 확인하세요",
			"악화 신호를 구체적으로 확인하세요",
		},
	},
}

var medicationTips = []string{
	"현재 복용 중인 모든 약물을 언급하세요",
	"처방약과 일반약 모두 포함해서 말하세요",
	"약물 복용 기간을 구체적으로 말하세요",
	"약물에 대한 부작용이 있었는지 말하세요",
}

var historyTips = []string{
	"과거에 비슷한 증상이 있었는지 말하세요",
	"알레르기가 있는지 확인하고 언급하세요",
	"만성 질환이 있다면 반드시 말하세요",
	"최근 수술이나 입원 경험이 있다면 언급하세요",
}

// Lookup returns the definition for a category, with generic defaults for
// categories it does not know.
func Lookup(category string) Definition {
	if d, ok := catalog[category]; ok {
		return d
	}
	return Definition{
		Title:    fmt.Sprintf("%s 개선하기", category),
		Icon:     "📝",
		Keywords: []string{"개선", "향상"},
		Tips:     []string{"개선을 위해 노력해보세요."},
	}
}
