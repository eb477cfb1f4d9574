package service

import "math/rand"

// productivityTips is the static catalog served by the tip endpoint.
var productivityTips = []string{
	"Break large tasks into smaller, manageable pieces. This makes them less overwhelming and easier to complete.",
	"Use the 2-minute rule: If a task takes less than 2 minutes, do it immediately instead of adding it to your list.",
	"Focus on one task at a time. Multitasking can reduce productivity by up to 40%.",
	"Take regular breaks using the Pomodoro Technique: 25 minutes of focused work, then a 5-minute break.",
	"Prioritize your tasks by importance and urgency. Tackle high-priority items first.",
	"Review your todo list at the end of each day and plan for the next day.",
	"Use the 'Eat the Frog' method: Do your most challenging task first thing in the morning.",
	"Set specific deadlines for your tasks. Open-ended tasks tend to get postponed.",
	"Celebrate small wins. Acknowledging progress keeps you motivated.",
	"Limit distractions by turning off notifications and creating a dedicated workspace.",
	"Batch similar tasks together to maintain focus and efficiency.",
	"Learn to say 'no' to tasks that don't align with your goals or priorities.",
	"Use time blocking to allocate specific time slots for different types of tasks.",
	"Keep your workspace clean and organized. A cluttered space leads to a cluttered mind.",
	"Delegate tasks that others can do, so you can focus on what only you can do.",
	"Track your time to understand where it actually goes and identify time-wasting activities.",
	"Set realistic expectations. Overcommitting leads to stress and decreased productivity.",
	"Practice the 'Done' list: Write down what you've completed to maintain motivation.",
	"Use the power of habit: Attach new tasks to existing routines.",
	"Sleep well! Adequate rest is crucial for maintaining high productivity levels.",
}

// RandomTip returns a random productivity tip from the static catalog.
func RandomTip() string {
	return productivityTips[rand.Intn(len(productivityTips))]
}
