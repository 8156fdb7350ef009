package models

// BonusQuestionsPerSet is the number of sub-questions in every bonus set
const BonusQuestionsPerSet = 3

// Question is a starter question worth a fixed number of points
type Question struct {
	// Text is the question as read out
	Text string `json:"question" yaml:"question"`

	// Answer is the expected answer
	Answer string `json:"answer" yaml:"answer"`

	// Points is awarded for a correct answer
	Points int `json:"points" yaml:"points"`
}

// BonusQuestion is one of the three questions in a bonus set
type BonusQuestion struct {
	Text   string `json:"question" yaml:"question"`
	Answer string `json:"answer" yaml:"answer"`
}

// BonusSet is a themed triplet of follow-up questions awarded after a correct starter
type BonusSet struct {
	// Topic names the theme of the set
	Topic string `json:"topic" yaml:"topic"`

	// Questions are asked in order
	Questions []BonusQuestion `json:"questions" yaml:"questions"`
}
