package classifier

import "fraud-detector/internal/models"

// Example is one labeled training sentence.
type Example struct {
	Text  string
	Label models.Label
}

// TrainingSet is the fixed corpus the model is fitted on.
var TrainingSet = []Example{
	{"urgent verify your bank account", models.LabelFraud},
	{"click here to reset your password", models.LabelFraud},
	{"your account has been suspended", models.LabelFraud},
	{"confirm your login details immediately", models.LabelFraud},
	{"limited time offer claim your prize", models.LabelFraud},
	{"you have won a gift card", models.LabelFraud},
	{"update your payment information", models.LabelFraud},
	{"security alert unusual login detected", models.LabelFraud},
	{"act now to avoid account closure", models.LabelFraud},
	{"verify your identity now", models.LabelFraud},

	{"meeting scheduled tomorrow at 3 pm", models.LabelSafe},
	{"invoice attached please review", models.LabelSafe},
	{"lunch at home today", models.LabelSafe},
	{"project deadline is next monday", models.LabelSafe},
	{"team meeting rescheduled", models.LabelSafe},
	{"please find the report attached", models.LabelSafe},
	{"can we discuss this tomorrow", models.LabelSafe},
	{"thanks for your help", models.LabelSafe},
	{"family dinner tonight", models.LabelSafe},
	{"see you at the office", models.LabelSafe},
}
