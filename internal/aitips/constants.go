package aitips

import "time"

// Gemini defaults
const (
	DefaultModel   = "gemini-2.0-flash"
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultTimeout = 30 * time.Second

	generateContentPath = "/v1beta/models/%s:generateContent"
	headerAPIKey        = "x-goog-api-key"
	responseMimeJSON    = "application/json"
	maxResponseBytes    = 1 << 20
)

// Advisor names, used as metric labels
const (
	AdvisorGemini = "gemini"
	AdvisorLocal  = "local"
)

// Log messages
const (
	LogMsgAdvisorFailed = "Tip advisor request failed"
	LogMsgAdvisorServed = "Tip advisor answered"
)

const promptTemplate = `You are an expert in bee colony management and honey production optimization. Analyze the current state of the virtual beehive and provide personalized tips to the player to improve their honey production.

Current Beehive State:
- Hive Level: {{.HiveLevel}}
- Worker Bee Count: {{.WorkerBeeCount}}
- Flower Types Planted: {{join .FlowerTypes ", "}}
- Current Honey Production Rate: {{.CurrentHoneyProductionRate}} units/hour
- Available Resources: Pollen - {{.AvailableResources.Pollen}}, Propolis - {{.AvailableResources.Propolis}}

Based on this information, provide a list of actionable optimization tips. Also, provide a reasoning section explaining why each tip is suggested based on the input data. Be specific and provide quantitative suggestions where applicable.

Output Format:
{
  "optimizationTips": ["Tip 1", "Tip 2", ...],
  "reasoning": "Explanation of the reasoning behind the tips."
}
`
