package dialogue

// Top-level menu digits.
const (
	menuMother    = "1"
	menuChild     = "2"
	menuFever     = "3"
	menuEmergency = "4"
	menuEnd       = "9"
)

// digitEmergency is the explicit emergency keypress on every submenu.
const digitEmergency = "9"

// menuPrompt is one bilingual prompt pair. Hindi first, matching the order
// callers hear them in.
type menuPrompt struct {
	hi string
	en string
}

var welcomePrompts = []menuPrompt{
	{"नमस्ते! ग्रामीणसेवा में आपका स्वागत है।", "Hello! Welcome to GraminSeva health service."},
	{
		"कृपया सुनें। माँ की स्वास्थ्य समस्या के लिए 1 दबाएं। बच्चे की स्वास्थ्य समस्या के लिए 2 दबाएं। बुखार की समस्या के लिए 3 दबाएं। आपातकाल के लिए 4 दबाएं। कॉल समाप्त करने के लिए 9 दबाएं। या बीप के बाद अपने लक्षण बोलकर बताएं।",
		"Please listen carefully. Press 1 if mother has a health problem. Press 2 if child has a health problem. Press 3 for a fever problem. Press 4 for an emergency. Press 9 to end the call. Or describe your symptoms in your own words after the beep.",
	},
}

var submenuPrompts = map[string][]menuPrompt{
	menuMother: {
		{"आपने माँ की स्वास्थ्य समस्या चुनी है। कृपया लक्षण चुनें।", "You selected mother health issue. Please choose symptoms."},
		{
			"बुखार या संक्रमण के लिए 1 दबाएं। पेट दर्द या उल्टी के लिए 2 दबाएं। चक्कर या कमजोरी के लिए 3 दबाएं। गंभीर रक्तस्राव या दर्द के लिए 9 दबाएं।",
			"Press 1 for fever or infection. Press 2 for stomach pain or vomiting. Press 3 for dizziness or weakness. Press 9 for severe bleeding or pain.",
		},
	},
	menuChild: {
		{"आपने बच्चे की स्वास्थ्य समस्या चुनी है। कृपया लक्षण चुनें।", "You selected child health issue. Please choose symptoms."},
		{
			"बुखार या खांसी के लिए 1 दबाएं। दस्त या उल्टी के लिए 2 दबाएं। भूख न लगने के लिए 3 दबाएं। सांस लेने में तकलीफ के लिए 9 दबाएं।",
			"Press 1 for fever or cough. Press 2 for diarrhea or vomiting. Press 3 for loss of appetite. Press 9 for breathing difficulty or severe illness.",
		},
	},
	menuFever: {
		{"आपने बुखार की समस्या चुनी है। कृपया लक्षण चुनें।", "You selected fever problem. Please choose symptoms."},
		{
			"हल्के बुखार के लिए 1 दबाएं। बच्चे के बुखार के लिए 2 दबाएं। बुखार और खांसी के लिए 3 दबाएं। बहुत तेज बुखार या झटके आने पर 9 दबाएं।",
			"Press 1 for mild fever. Press 2 for a child with fever. Press 3 for fever with cough. Press 9 for very high fever or seizures.",
		},
	},
	menuEmergency: {
		{"आपने आपातकाल चुना है। कृपया समस्या चुनें।", "You selected emergency. Please choose the problem."},
		{
			"रक्तस्राव के लिए 1 दबाएं। बेहोशी के लिए 2 दबाएं। सांस की तकलीफ के लिए 3 दबाएं। किसी और गंभीर स्थिति के लिए 9 दबाएं।",
			"Press 1 for bleeding. Press 2 for unconsciousness. Press 3 for breathing difficulty. Press 9 for any other severe emergency.",
		},
	},
}

var goodbyePrompts = []menuPrompt{
	{"धन्यवाद। स्वस्थ रहें।", "Thank you for calling GraminSeva. Take care."},
}

var invalidPrompts = []menuPrompt{
	{"अमान्य विकल्प। कृपया दोबारा कॉल करें।", "Invalid input. Please call back and try again."},
}

var escalationPrompts = []menuPrompt{
	{"कृपया तुरंत स्वास्थ्य केंद्र जाएं।", "Please go to the health center immediately."},
}

// symptomOption maps a submenu keypress to the natural-language symptom
// description fed to the classifier. Routing digits through an English
// description lets the same classifier backend serve keypress and
// free-speech flows uniformly.
type symptomOption struct {
	label       string
	description string
}

var symptomMenus = map[string]map[string]symptomOption{
	menuMother: {
		"1": {"mother fever or infection", "A mother (adult woman) is calling about fever or infection. She needs advice on home care, monitoring temperature, when to visit a doctor, and warning signs."},
		"2": {"mother stomach pain or vomiting", "A mother (adult woman) has stomach pain or vomiting. She needs advice on what to eat and avoid, home remedies like ORS, and when to seek medical help."},
		"3": {"mother dizziness or weakness", "A mother (adult woman) has dizziness or weakness, possibly from low blood pressure, anemia, or dehydration. Advise on immediate steps, iron-rich foods, rest, and when to see a doctor."},
		"9": {"mother severe bleeding or pain", "CRITICAL EMERGENCY: A mother has severe bleeding or severe pain. This requires IMMEDIATE medical attention."},
	},
	menuChild: {
		"1": {"child fever or cough", "A parent is calling about their child who has fever or cough. They need guidance on reducing fever at home, fluids, helping with cough, and when to rush to a doctor."},
		"2": {"child diarrhea or vomiting", "A parent's child has diarrhea or vomiting, with dehydration risk. Advise on giving ORS frequently, foods to give and avoid, signs of dehydration, and when it becomes critical."},
		"3": {"child loss of appetite", "A child has loss of appetite or is not eating well. Advise on encouraging eating, nutritious foods, small frequent meals, and signs this becomes serious."},
		"9": {"child breathing difficulty", "CRITICAL CHILD EMERGENCY: A child has breathing difficulty or life-threatening symptoms. The parents must rush to a hospital immediately."},
	},
	menuFever: {
		"1": {"adult mild fever", "An adult has mild fever. They need guidance on home care, paracetamol dosing caution, fluids, rest, monitoring temperature, and when to see a doctor."},
		"2": {"child fever", "A parent is calling about their child who has fever. They need guidance on reducing fever at home, sponging, fluids, and warning signs that need a doctor."},
		"3": {"fever with cough", "The caller has both fever and cough together, a possible infection. Advise on home care for the combination and when to seek medical help."},
		"9": {"very high fever or seizures", "CRITICAL EMERGENCY: The patient has very high fever with possible seizures or unconsciousness. This requires IMMEDIATE medical attention."},
	},
	menuEmergency: {
		"1": {"emergency bleeding", "EMERGENCY: The caller reports heavy bleeding. This requires immediate medical attention."},
		"2": {"emergency unconscious", "EMERGENCY: The patient is unconscious. This requires immediate medical attention."},
		"3": {"emergency breathing difficulty", "EMERGENCY: The patient has breathing difficulty. This requires immediate medical attention."},
		"9": {"emergency severe", "CRITICAL EMERGENCY: The caller reports a severe life-threatening situation with bleeding or unconsciousness. Go to hospital RIGHT NOW."},
	},
}
