package content

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func sampleLessons() []Lesson {
	return []Lesson{
		{
			ID: "math-fractions-class6",
			Title: map[string]string{
				"en": "Fractions - Class 6",
				"hi": "भिन्न - कक्षा 6",
				"pa": "ਭਿੰਨ - ਕਲਾਸ 6",
			},
			Subject:    "Math",
			Thumbnail:  "https://via.placeholder.com/300x200/3b82f6/white?text=Fractions",
			Duration:   15,
			Status:     StatusNotStarted,
			Progress:   0,
			Downloaded: true,
			Sections: []Section{
				{
					Title: "What are Fractions?",
					Text:  "A fraction represents a part of a whole. For example, if you cut a pizza into 4 equal pieces and eat 1 piece, you have eaten 1/4 of the pizza.",
					Image: "https://via.placeholder.com/400x300/f59e0b/white?text=Pizza+1/4",
				},
				{
					Title: "Reading Fractions",
					Text:  "In the fraction 3/4: 3 is the numerator (top number) and 4 is the denominator (bottom number).",
					Image: "https://via.placeholder.com/400x300/10b981/white?text=3/4",
				},
			},
			Quiz: Quiz{Questions: []Question{
				{ID: 1, Type: QuestionMCQ, Question: "What does 1/4 mean?", Options: []string{"One out of four equal parts", "Four equal parts", "One plus four", "Four minus one"}, CorrectIndex: 0},
				{ID: 2, Type: QuestionMCQ, Question: "In the fraction 2/5, what is the numerator?", Options: []string{"5", "2", "7", "3"}, CorrectIndex: 1},
				{ID: 3, Type: QuestionTrueFalse, Question: "3/3 equals one whole.", CorrectBool: true},
			}},
		},
		{
			ID: "english-grammar-basic",
			Title: map[string]string{
				"en": "Simple Grammar",
				"hi": "सरल व्याकरण",
				"pa": "ਸਾਧਾ ਵਿਆਕਰਣ",
			},
			Subject:    "English",
			Thumbnail:  "https://via.placeholder.com/300x200/8b5cf6/white?text=Grammar",
			Duration:   12,
			Status:     StatusInProgress,
			Progress:   60,
			Downloaded: true,
			Sections: []Section{
				{
					Title: "Nouns",
					Text:  "A noun is a word that names a person, place, thing, or idea. Examples: teacher, school, book, happiness.",
					Image: "https://via.placeholder.com/400x300/ec4899/white?text=Nouns",
				},
				{
					Title: "Verbs",
					Text:  "A verb is an action word. It tells us what someone or something is doing. Examples: run, jump, think, sleep.",
					Image: "https://via.placeholder.com/400x300/f97316/white?text=Verbs",
				},
			},
			Quiz: Quiz{Questions: []Question{
				{ID: 1, Type: QuestionMCQ, Question: "Which word is a noun?", Options: []string{"running", "beautiful", "teacher", "quickly"}, CorrectIndex: 2},
				{ID: 2, Type: QuestionMCQ, Question: "Which word is a verb?", Options: []string{"table", "blue", "jump", "happy"}, CorrectIndex: 2},
				{ID: 3, Type: QuestionTrueFalse, Question: "A verb describes an action.", CorrectBool: true},
			}},
		},
		{
			ID: "digital-literacy-basics",
			Title: map[string]string{
				"en": "How to use Mouse & Keyboard",
				"hi": "माउस और कीबोर्ड का उपयोग",
				"pa": "ਮਾਊਸ ਅਤੇ ਕੀਬੋਰਡ ਦੀ ਵਰਤੋਂ",
			},
			Subject:    "Digital Literacy",
			Thumbnail:  "https://via.placeholder.com/300x200/06b6d4/white?text=Computer",
			Duration:   10,
			Status:     StatusCompleted,
			Progress:   100,
			Downloaded: true,
			Sections: []Section{
				{
					Title: "Using a Mouse",
					Text:  "Hold the mouse gently with your right hand. Move it on a flat surface to move the cursor on screen. Left-click to select items.",
					Image: "https://via.placeholder.com/400x300/84cc16/white?text=Mouse+Guide",
				},
				{
					Title: "Using a Keyboard",
					Text:  "Place your fingers on the home row keys. Use all ten fingers to type. The space bar creates spaces between words.",
					Image: "https://via.placeholder.com/400x300/a855f7/white?text=Keyboard",
				},
			},
			Quiz: Quiz{Questions: []Question{
				{ID: 1, Type: QuestionMCQ, Question: "What does left-clicking the mouse do?", Options: []string{"Delete items", "Select items", "Copy items", "Move items"}, CorrectIndex: 1},
				{ID: 2, Type: QuestionTrueFalse, Question: "You should use only one finger to type.", CorrectBool: false},
				{ID: 3, Type: QuestionMCQ, Question: "What creates spaces between words?", Options: []string{"Enter key", "Shift key", "Space bar", "Tab key"}, CorrectIndex: 2},
			}},
		},
	}
}

func sampleStudents() []Student {
	return []Student{
		{ID: "s001", Name: "Harjit Kaur", Class: "6A", Progress: map[string]int{"math-fractions-class6": 100, "english-grammar-basic": 75, "digital-literacy-basics": 100}},
		{ID: "s002", Name: "Amar Singh", Class: "6A", Progress: map[string]int{"math-fractions-class6": 60, "english-grammar-basic": 90, "digital-literacy-basics": 100}},
		{ID: "s003", Name: "Simran Sharma", Class: "6B", Progress: map[string]int{"math-fractions-class6": 85, "english-grammar-basic": 40, "digital-literacy-basics": 75}},
		{ID: "s004", Name: "Ravi Patel", Class: "6A", Progress: map[string]int{"math-fractions-class6": 30, "english-grammar-basic": 100, "digital-literacy-basics": 90}},
		{ID: "s005", Name: "Priya Gupta", Class: "6B", Progress: map[string]int{"math-fractions-class6": 100, "english-grammar-basic": 85, "digital-literacy-basics": 100}},
	}
}
