package skills

// Default returns the built-in catalog: the portfolio's floating skills in
// their display order.
func Default() Catalog {
	return Catalog{
		Title: "Skills",
		Skills: []Skill{
			{Name: "ReactJs", Category: "frontend", Level: 90, From: "cyan-400", To: "blue-500"},
			{Name: "AngularJs", Category: "frontend", Level: 95, From: "red-500", To: "pink-600"},
			{Name: "NextJS", Category: "frontend", Level: 85, From: "gray-700", To: "gray-900"},
			{Name: "TypeScript", Category: "frontend", Level: 90, From: "blue-600", To: "blue-800"},
			{Name: "Node.js", Category: "backend", Level: 70, From: "green-600", To: "green-800"},
			{Name: "Web3", Category: "web3", Level: 85, From: "purple-500", To: "indigo-600"},
			{Name: "Redux", Category: "state", Level: 90, From: "purple-600", To: "purple-800"},
			{Name: "TailwindCSS", Category: "frontend", From: "cyan-400", To: "blue-500"},
			{Name: "MUI", Category: "frontend", Level: 90, From: "blue-500", To: "indigo-600"},
			{Name: "DeFi", Category: "web3", Level: 80, From: "green-500", To: "emerald-600"},
			{Name: "JavaScript", Category: "frontend", Level: 95, From: "yellow-500", To: "orange-500"},
			{Name: "Blockchain", Category: "web3", From: "purple-500", To: "indigo-600"},
			{Name: "HTML5", Category: "frontend", Level: 95, From: "orange-500", To: "red-500"},
			{Name: "CSS3", Category: "frontend", Level: 90, From: "blue-500", To: "cyan-600"},
			{Name: "Service Workers", Category: "frontend"},
			{Name: "SEO Optimization", Category: "practices"},
			{Name: "Performance Optimization", Category: "practices"},
			{Name: "Code Review", Category: "practices"},
			{Name: "Team Leadership", Category: "practices"},
			{Name: "Agile Methodologies", Category: "practices"},
			{Name: "API Integration", Category: "backend"},
			{Name: "State Management", Category: "state"},
		},
	}
}
