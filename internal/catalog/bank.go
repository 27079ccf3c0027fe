package catalog

// The default screening script. Slot order is the master sequence; the
// controller advances through it one question per turn.
var defaultFlow = []Slot{
	{ID: "Q1", Key: "INTRO", Phase: PhaseIntro, AnswerSeconds: 0},
	{ID: "Q2", Key: "CV_WALKTHROUGH", Phase: PhaseCV, AnswerSeconds: 60},
	{ID: "Q3", Key: "RECENT_ROLE_DETAILS", Phase: PhaseCV, AnswerSeconds: 60},
	{ID: "Q4", Key: "CUSTOMER_EXPOSURE", Phase: PhaseCV, AnswerSeconds: 60},
	{ID: "Q5", Key: "TOOLS_SYSTEMS", Phase: PhaseCV, AnswerSeconds: 60},
	{ID: "Q6", Key: "GAP_OR_TRANSITION", Phase: PhaseCV, AnswerSeconds: 60},
	{ID: "Q7", Key: "SCENARIO_TECH", Phase: PhaseScenario, AnswerSeconds: 90},
	{ID: "Q8", Key: "SCENARIO_ANGRY", Phase: PhaseScenario, AnswerSeconds: 90},
	{ID: "Q9", Key: "POLICY_COMPLIANCE", Phase: PhaseScenario, AnswerSeconds: 90},
	{ID: "Q10", Key: "STRESS_PRESSURE", Phase: PhaseReliability, AnswerSeconds: 75},
	{ID: "Q11", Key: "SCHEDULE_RELIABILITY", Phase: PhaseReliability, AnswerSeconds: 60},
	{ID: "Q12", Key: "COACHABILITY", Phase: PhaseClosing, AnswerSeconds: 60},
}

// Three phrasing variants per competency so candidates don't hear identical
// scripts across sessions.
var defaultBank = map[string][]Variant{
	"INTRO": {
		{ID: "Q1_V1", Text: "Great. I'm going to ask you a few questions about your experience to find the best match for you. Let's start with your background."},
		{ID: "Q1_V2", Text: "Thanks for joining me. I'd love to learn about your skills and experience to see where you'd fit best. Shall we start with your work history?"},
		{ID: "Q1_V3", Text: "Welcome. To help us find the perfect program for you, I have a few questions about your career so far. Let's begin with your background."},
	},
	"CV_WALKTHROUGH": {
		{ID: "Q2_V1", Text: "Please walk me through your work history starting with your most recent role."},
		{ID: "Q2_V2", Text: "Could you give me a brief overview of your professional background, starting from the present and working backwards?"},
		{ID: "Q2_V3", Text: "I've got your CV here, but I'd love to hear it in your own words. Can you summarize your recent work history for me?"},
	},
	"RECENT_ROLE_DETAILS": {
		{ID: "Q3_V1", Text: "In your most recent role at [MOST_RECENT_COMPANY], what were your day-to-day responsibilities?"},
		{ID: "Q3_V2", Text: "Thinking about your time at [MOST_RECENT_COMPANY], what were the main tasks you handled on a typical day?"},
		{ID: "Q3_V3", Text: "At [MOST_RECENT_COMPANY], what did a standard shift look like for you, and what were your key duties?"},
	},
	"CUSTOMER_EXPOSURE": {
		{ID: "Q4_V1", Text: "How often did you interact with customers, and through which channels—phone, chat, email, or in person?"},
		{ID: "Q4_V2", Text: "What was the volume of customer interaction in that role, and did you mostly use voice, chat, or email?"},
		{ID: "Q4_V3", Text: "Did you spend most of your day speaking with customers? If so, was it face-to-face or over the phone?"},
	},
	"TOOLS_SYSTEMS": {
		{ID: "Q5_V1", Text: "What tools or systems did you use regularly—like CRMs, ticketing tools, or any software?"},
		{ID: "Q5_V2", Text: "Are you comfortable with technical tools? Which specific software or CRM platforms have you used before?"},
		{ID: "Q5_V3", Text: "Walk me through the technology stack you used. Any experience with ticketing systems or complex databases?"},
	},
	// The Q6 slot key GAP_OR_TRANSITION resolves to one of the two banks
	// below depending on the profile's gap analysis.
	"GAP_QUESTIONS": {
		{ID: "Q6_GAP_V1", Text: "I noticed a gap in your employment [DATE]. Could you share how you spent that time?"},
		{ID: "Q6_GAP_V2", Text: "It looks like you had some time off [DATE]. What were you focusing on during that period?"},
		{ID: "Q6_GAP_V3", Text: "Could you tell me a little bit about the break in your work history [DATE]?"},
	},
	"TRANSITION_QUESTIONS": {
		{ID: "Q6_TRANS_V1", Text: "Why are you looking to leave your current or most recent position now?"},
		{ID: "Q6_TRANS_V2", Text: "What is motivating you to look for a new opportunity at this stage in your career?"},
		{ID: "Q6_TRANS_V3", Text: "What are you looking for in your next role that you aren't getting in your current one?"},
	},
	"SCENARIO_TECH": {
		{ID: "Q7_V1", Text: "Here is a scenario. A customer says: 'My internet hasn't been working since yesterday.' What would you say and do first?"},
		{ID: "Q7_V2", Text: "Imagine a customer calls in saying, 'I can't connect to the wifi and I have work to do.' Walk me through your first few steps."},
		{ID: "Q7_V3", Text: "Roleplay with me for a second. I call you and say 'My service is completely down.' How do you start the troubleshooting process?"},
	},
	"SCENARIO_ANGRY": {
		{ID: "Q8_V1", Text: "Imagine a customer is angry and says they were charged incorrectly. There's no rush—what would you say first, and why?"},
		{ID: "Q8_V2", Text: "A customer calls in yelling about an overcharge on their bill. How do you de-escalate the situation?"},
		{ID: "Q8_V3", Text: "You receive a call from a very frustrated customer who believes we made a billing error. How do you handle their anger?"},
	},
	"POLICY_COMPLIANCE": {
		{ID: "Q9_V1", Text: "A customer asks you to do something against policy and says 'another agent did it for me before.' How do you handle it?"},
		{ID: "Q9_V2", Text: "If a customer pushes you to bend the rules because 'everyone else does it', how do you respond while maintaining the policy?"},
		{ID: "Q9_V3", Text: "How would you handle a situation where a customer demands a refund that clearly violates company policy?"},
	},
	"STRESS_PRESSURE": {
		{ID: "Q10_V1", Text: "Thinking back, tell me about a time you worked under pressure or handled a difficult situation. What did you do?"},
		{ID: "Q10_V2", Text: "Call centers can be fast-paced. Can you describe a time you had to handle high pressure or a heavy workload?"},
		{ID: "Q10_V3", Text: "Tell me about a stressful day at work you've had recently. How did you manage your stress levels?"},
	},
	"SCHEDULE_RELIABILITY": {
		{ID: "Q11_V1", Text: "Call centre roles require punctuality and consistency. How do you make sure you stay on time and focused during long shifts?"},
		{ID: "Q11_V2", Text: "Reliability is key for us. What systems or habits do you use to ensure you are always on time and ready for work?"},
		{ID: "Q11_V3", Text: "How do you manage your schedule to ensure you don't miss shifts, even when life gets busy?"},
	},
	"COACHABILITY": {
		{ID: "Q12_V1", Text: "Last question. What part of customer service do you find most challenging, and what would you like to improve?"},
		{ID: "Q12_V2", Text: "We believe in continuous learning. What is one area of your professional skillset you are actively trying to improve?"},
		{ID: "Q12_V3", Text: "Finally, if you looked back at your last performance review, what was one area identified for growth?"},
	},
}
