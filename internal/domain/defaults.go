package domain

// DefaultQuestionSet returns the built-in general-knowledge questions used
// when no external form is loaded. IDs match the printed QR codes ("1".."19").
func DefaultQuestionSet() QuestionSet {
	return QuestionSet{
		ID:    "default",
		Title: "General Knowledge",
		Questions: []Question{
			{ID: "1", Prompt: "What is the capital of Brazil?", Options: []string{"Sao Paulo", "Rio de Janeiro", "Brasilia", "Salvador"}, CorrectAnswer: 2, Points: 10},
			{ID: "2", Prompt: "What is 2 + 2?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: 1, Points: 5},
			{ID: "3", Prompt: "What is the largest planet in the solar system?", Options: []string{"Earth", "Mars", "Jupiter", "Saturn"}, CorrectAnswer: 2, Points: 15},
			{ID: "4", Prompt: "Who painted the Mona Lisa?", Options: []string{"Van Gogh", "Leonardo da Vinci", "Picasso", "Michelangelo"}, CorrectAnswer: 1, Points: 15},
			{ID: "5", Prompt: "Which chemical element has the symbol O?", Options: []string{"Gold", "Oxygen", "Osmium", "Oganesson"}, CorrectAnswer: 1, Points: 10},
			{ID: "6", Prompt: "In what year did humans first walk on the Moon?", Options: []string{"1967", "1968", "1969", "1970"}, CorrectAnswer: 2, Points: 20},
			{ID: "7", Prompt: "What is the largest ocean in the world?", Options: []string{"Atlantic", "Indian", "Arctic", "Pacific"}, CorrectAnswer: 3, Points: 10},
			{ID: "8", Prompt: "How many continents are there?", Options: []string{"5", "6", "7", "8"}, CorrectAnswer: 2, Points: 5},
			{ID: "9", Prompt: "What is the official currency of Japan?", Options: []string{"Won", "Yuan", "Yen", "Dong"}, CorrectAnswer: 2, Points: 10},
			{ID: "10", Prompt: "Who wrote \"Dom Casmurro\"?", Options: []string{"Machado de Assis", "Jose de Alencar", "Clarice Lispector", "Guimaraes Rosa"}, CorrectAnswer: 0, Points: 15},
			{ID: "11", Prompt: "What is the chemical formula of water?", Options: []string{"CO2", "H2O", "O2", "H2SO4"}, CorrectAnswer: 1, Points: 5},
			{ID: "12", Prompt: "In which country is Machu Picchu located?", Options: []string{"Chile", "Bolivia", "Peru", "Ecuador"}, CorrectAnswer: 2, Points: 15},
			{ID: "13", Prompt: "What is the smallest country in the world?", Options: []string{"Monaco", "Vatican City", "San Marino", "Liechtenstein"}, CorrectAnswer: 1, Points: 20},
			{ID: "14", Prompt: "How many sides does a hexagon have?", Options: []string{"5", "6", "7", "8"}, CorrectAnswer: 1, Points: 5},
			{ID: "15", Prompt: "What is the speed of light in a vacuum?", Options: []string{"300,000 km/s", "299,792,458 m/s", "150,000 km/s", "400,000 km/s"}, CorrectAnswer: 1, Points: 25},
			{ID: "16", Prompt: "Who was the first president of Brazil?", Options: []string{"Getulio Vargas", "Juscelino Kubitschek", "Deodoro da Fonseca", "Floriano Peixoto"}, CorrectAnswer: 2, Points: 15},
			{ID: "17", Prompt: "What is the longest river in the world?", Options: []string{"Amazon", "Nile", "Mississippi", "Yangtze"}, CorrectAnswer: 1, Points: 15},
			{ID: "18", Prompt: "In what year was the independence of Brazil proclaimed?", Options: []string{"1820", "1821", "1822", "1823"}, CorrectAnswer: 2, Points: 10},
			{ID: "19", Prompt: "Which operating system is developed by Apple?", Options: []string{"Windows", "Linux", "Android", "macOS"}, CorrectAnswer: 3, Points: 5},
		},
	}
}
