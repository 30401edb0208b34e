package i18n

var messages = map[string]map[string]string{
	"en": {
		"selectLanguage":   "Select Language",
		"chooseRole":       "Choose Your Role",
		"student":          "Student",
		"teacher":          "Teacher",
		"lessons":          "Lessons",
		"progress":         "Progress",
		"dashboard":        "Dashboard",
		"startLesson":      "Start Lesson",
		"takeQuiz":         "Take Quiz",
		"retakeQuiz":       "Retake Quiz",
		"completed":        "Completed",
		"inProgress":       "In Progress",
		"notStarted":       "Not Started",
		"score":            "Score",
		"correct":          "Correct!",
		"incorrect":        "Incorrect",
		"offline":          "Offline",
		"online":           "Online",
		"sync":             "Sync Now",
		"synced":           "Synced Successfully",
		"downloadComplete": "Downloaded",
		"classOverview":    "Class Overview",
		"studentName":      "Student Name",
		"avgProgress":      "Avg Progress",
		"lastActivity":     "Last Activity",
		"back":             "Back",
		"next":             "Next",
		"submit":           "Submit",
		"audioNarration":   "Audio Narration",
		"settings":         "Settings",
		"author":           "Author",
		"admin":            "Admin",
	},
	"hi": {
		"selectLanguage":   "भाषा चुनें",
		"chooseRole":       "अपनी भूमिका चुनें",
		"student":          "छात्र",
		"teacher":          "शिक्षक",
		"lessons":          "पाठ",
		"progress":         "प्रगति",
		"dashboard":        "डैशबोर्ड",
		"startLesson":      "पाठ शुरू करें",
		"takeQuiz":         "प्रश्नोत्तरी लें",
		"retakeQuiz":       "दोबारा प्रश्नोत्तरी लें",
		"completed":        "पूर्ण",
		"inProgress":       "चालू",
		"notStarted":       "शुरू नहीं",
		"score":            "अंक",
		"correct":          "सही!",
		"incorrect":        "गलत",
		"offline":          "ऑफलाइन",
		"online":           "ऑनलाइन",
		"sync":             "अब सिंक करें",
		"synced":           "सफलतापूर्वक सिंक",
		"downloadComplete": "डाउनलोड हो गया",
		"classOverview":    "कक्षा अवलोकन",
		"studentName":      "छात्र का नाम",
		"avgProgress":      "औसत प्रगति",
		"lastActivity":     "अंतिम गतिविधि",
		"back":             "वापस",
		"next":             "अगला",
		"submit":           "जमा करें",
		"audioNarration":   "ऑडियो वर्णन",
		"settings":         "सेटिंग्स",
		"author":           "लेखक",
		"admin":            "प्रशासक",
	},
	"pa": {
		"selectLanguage":   "ਭਾਸ਼ਾ ਚੁਣੋ",
		"chooseRole":       "ਆਪਣੀ ਭੂਮਿਕਾ ਚੁਣੋ",
		"student":          "ਵਿਦਿਆਰਥੀ",
		"teacher":          "ਅਧਿਆਪਕ",
		"lessons":          "ਪਾਠ",
		"progress":         "ਪ੍ਰਗਤੀ",
		"dashboard":        "ਡੈਸ਼ਬੋਰਡ",
		"startLesson":      "ਪਾਠ ਸ਼ੁਰੂ ਕਰੋ",
		"takeQuiz":         "ਟੈਸਟ ਲਓ",
		"retakeQuiz":       "ਮੁੜ ਟੈਸਟ ਲਓ",
		"completed":        "ਮੁਕੰਮਲ",
		"inProgress":       "ਜਾਰੀ",
		"notStarted":       "ਸ਼ੁਰੂ ਨਹੀਂ",
		"score":            "ਸਕੋਰ",
		"correct":          "ਸਹੀ!",
		"incorrect":        "ਗਲਤ",
		"offline":          "ਆਫਲਾਈਨ",
		"online":           "ਆਨਲਾਈਨ",
		"sync":             "ਹੁਣ ਸਿੰਕ ਕਰੋ",
		"synced":           "ਸਫਲਤਾਪੂਰਵਕ ਸਿੰਕ",
		"downloadComplete": "ਡਾਊਨਲੋਡ ਮੁਕੰਮਲ",
		"classOverview":    "ਕਲਾਸ ਸੰਖੇਪ",
		"studentName":      "ਵਿਦਿਆਰਥੀ ਦਾ ਨਾਮ",
		"avgProgress":      "ਔਸਤ ਪ੍ਰਗਤੀ",
		"lastActivity":     "ਅੰਤਿਮ ਗਤੀਵਿਧੀ",
		"back":             "ਵਾਪਸ",
		"next":             "ਅਗਲਾ",
		"submit":           "ਜਮ੍ਹਾ ਕਰੋ",
		"audioNarration":   "ਆਡੀਓ ਬਿਰਤਾਂਤ",
		"settings":         "ਸੈਟਿੰਗਾਂ",
		"author":           "ਲੇਖਕ",
		"admin":            "ਪ੍ਰਸ਼ਾਸਕ",
	},
}
