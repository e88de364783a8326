package service

import "fraud-detector/internal/models"

// DefaultQuestions is the question set of the phishing training game.
var DefaultQuestions = []models.QuizQuestion{
	{
		ID:     0,
		Text:   "Urgent! Verify your account immediately.",
		Answer: models.LabelFraud,
		Reason: "Creates urgency and asks for action.",
	},
	{
		ID:     1,
		Text:   "Meeting scheduled tomorrow at 3 PM.",
		Answer: models.LabelSafe,
		Reason: "Normal internal communication.",
	},
	{
		ID:     2,
		Text:   "Click here to reset your password.",
		Answer: models.LabelFraud,
		Reason: "Suspicious link asking for credentials.",
	},
	{
		ID:     3,
		Text:   "Invoice attached. Please review.",
		Answer: models.LabelSafe,
		Reason: "Common business email.",
	},
}
