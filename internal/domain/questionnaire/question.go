package questionnaire

// QuestionID identifica um nó do fluxo de criação de meta.
type QuestionID string

const (
	QuestionGoalName            QuestionID = "goal_name"
	QuestionGoalType            QuestionID = "goal_type"
	QuestionBuddyOrSolo         QuestionID = "buddy_or_solo"
	QuestionTaskTracked         QuestionID = "task_tracked"
	QuestionInsertListItems     QuestionID = "insert_list_items"
	QuestionKeepStreak          QuestionID = "keep_streak"
	QuestionTrackDailyQuantity  QuestionID = "track_daily_quantity"
	QuestionUnitTracked         QuestionID = "unit_tracked"
	QuestionChallengeOrFriendly QuestionID = "challenge_or_friendly"
	QuestionWinningCondition    QuestionID = "winning_condition"
	QuestionWinningNumber       QuestionID = "winning_number"
	QuestionEndDate             QuestionID = "end_date"
	QuestionWinnersPrize        QuestionID = "winners_prize"

	// QuestionEnd é o nó terminal do fluxo.
	QuestionEnd QuestionID = "end"
)

type InputType string

const (
	InputText    InputType = "text"
	InputChoice  InputType = "choice"
	InputBoolean InputType = "boolean"
	InputNumber  InputType = "number"
	InputDate    InputType = "date"
	InputList    InputType = "list"
)

type Question struct {
	Id        QuestionID `json:"id"`
	InputType InputType  `json:"inputType"`
	Text      string     `json:"text"`
	// DynamicOptions marca perguntas cujas opções dependem de respostas
	// anteriores; use Options(sheet) para obtê-las.
	DynamicOptions bool     `json:"dynamicOptions"`
	StaticOptions  []string `json:"options,omitempty"`
}

var questions = map[QuestionID]Question{
	QuestionGoalName: {
		Id:        QuestionGoalName,
		InputType: InputText,
		Text:      "What is the name of your goal?",
	},
	QuestionGoalType: {
		Id:            QuestionGoalType,
		InputType:     InputChoice,
		Text:          "How do you want to track it?",
		StaticOptions: []string{"list_tracker", "daily_tracker", "list_created_by_user"},
	},
	QuestionBuddyOrSolo: {
		Id:            QuestionBuddyOrSolo,
		InputType:     InputChoice,
		Text:          "Do you want to do this goal with a buddy or solo?",
		StaticOptions: []string{"buddy", "solo"},
	},
	QuestionTaskTracked: {
		Id:        QuestionTaskTracked,
		InputType: InputText,
		Text:      "What task are you tracking?",
	},
	QuestionInsertListItems: {
		Id:        QuestionInsertListItems,
		InputType: InputList,
		Text:      "Insert the items of your list",
	},
	QuestionKeepStreak: {
		Id:        QuestionKeepStreak,
		InputType: InputBoolean,
		Text:      "Do you want to keep a streak?",
	},
	QuestionTrackDailyQuantity: {
		Id:        QuestionTrackDailyQuantity,
		InputType: InputBoolean,
		Text:      "Do you want to track a daily quantity?",
	},
	QuestionUnitTracked: {
		Id:        QuestionUnitTracked,
		InputType: InputText,
		Text:      "What unit are you tracking?",
	},
	QuestionChallengeOrFriendly: {
		Id:            QuestionChallengeOrFriendly,
		InputType:     InputChoice,
		Text:          "Is this a challenge or a friendly goal?",
		StaticOptions: []string{"challenge", "friendly"},
	},
	QuestionWinningCondition: {
		Id:             QuestionWinningCondition,
		InputType:      InputChoice,
		Text:           "How does someone win?",
		DynamicOptions: true,
	},
	QuestionWinningNumber: {
		Id:        QuestionWinningNumber,
		InputType: InputNumber,
		Text:      "What number do you need to reach?",
	},
	QuestionEndDate: {
		Id:        QuestionEndDate,
		InputType: InputDate,
		Text:      "When does the challenge end?",
	},
	QuestionWinnersPrize: {
		Id:        QuestionWinnersPrize,
		InputType: InputText,
		Text:      "What is the winner's prize?",
	},
}

// Lookup devolve a definição da pergunta.
func Lookup(id QuestionID) (Question, bool) {
	q, ok := questions[id]
	return q, ok
}
