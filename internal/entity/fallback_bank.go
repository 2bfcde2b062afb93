package entity

import "encoding/json"

// KeyPointList decodes the stored JSON key-point array.
func (q *FallbackQuestion) KeyPointList() []string {
	var points []string
	if q.KeyPoints == "" {
		return points
	}
	if err := json.Unmarshal([]byte(q.KeyPoints), &points); err != nil {
		return nil
	}
	return points
}

// DefaultFallbackQuestions is the built-in question bank. It seeds the
// fallback_questions table and doubles as the last resort when even the
// seeded table is unreachable.
func DefaultFallbackQuestions() []FallbackQuestion {
	return []FallbackQuestion{
		{
			Rank:           1,
			QuestionText:   "A customer asks how often they need to come in for hair system maintenance. What do you tell them?",
			ExpectedAnswer: "Service appointments are typically every 3-4 weeks for re-bonding and maintenance. Regular servicing keeps the system secure, hygienic, and looking natural.",
			KeyPoints:      `["every 3-4 weeks","re-bonding","hygiene","natural look"]`,
			SourceLabel:    "Fallback Bank",
			IsObjection:    false,
		},
		{
			Rank:           2,
			QuestionText:   "A customer says a hair transplant would be a better investment than a hair system. How do you respond?",
			ExpectedAnswer: "Acknowledge the option, then explain that transplants need sufficient donor hair, involve surgery and months of recovery, and results vary. A hair system gives an immediate, guaranteed, fuller result with no surgery, and the customer can see the outcome before committing.",
			KeyPoints:      `["acknowledge","donor hair requirement","surgery and recovery","immediate guaranteed result","no surgery"]`,
			SourceLabel:    "Fallback Bank",
			IsObjection:    true,
		},
		{
			Rank:           3,
			QuestionText:   "How long does a hair patch typically last, and what affects its lifespan?",
			ExpectedAnswer: "A quality patch lasts around 6-12 months depending on the base type, daily care routine, and regular servicing. Proper maintenance and gentle handling extend its life.",
			KeyPoints:      `["6-12 months","base type","daily care","regular servicing"]`,
			SourceLabel:    "Fallback Bank",
			IsObjection:    false,
		},
		{
			Rank:           4,
			QuestionText:   "A customer worries the hair system will look fake and people will notice. What do you say?",
			ExpectedAnswer: "Reassure with confidence: modern systems use natural human hair matched to their own density, color, and hairline, and are custom fitted. Offer to show real before/after results and invite them to a trial fitting so they can judge for themselves.",
			KeyPoints:      `["natural human hair","matched density and color","custom hairline","before/after results","trial fitting"]`,
			SourceLabel:    "Fallback Bank",
			IsObjection:    true,
		},
		{
			Rank:           5,
			QuestionText:   "A customer asks about the price range for a full hair system. How do you present it?",
			ExpectedAnswer: "Present the range of 15,000 to 50,000 depending on base type, hair quality, and customization, then anchor on value: a natural look, daily confidence, and ongoing service support. Offer to walk through the options that fit their budget.",
			KeyPoints:      `["15,000 to 50,000","base type and hair quality","value framing","budget options"]`,
			SourceLabel:    "Fallback Bank",
			IsObjection:    false,
		},
	}
}
