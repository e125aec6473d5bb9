package content

import "github.com/BTreeMap/CoverageGuide/internal/models"

// Benefit group labels, in declaration order.
const (
	GroupHealth   = "Health & Recovery"
	GroupIncome   = "Income & Daily Living"
	GroupFamily   = "Family & Survivors"
	GroupExpenses = "Property & Expenses"
)

var benefitGroups = []string{GroupHealth, GroupIncome, GroupFamily, GroupExpenses}

var consumerTimeline = []models.TimelineStep{
	{
		Date:        "April 2024",
		Title:       "Ontario Budget Announcement",
		Description: "The provincial government announced a plan to provide drivers with more choice and lower premiums through insurance reform.",
		Status:      models.TimelineCompleted,
	},
	{
		Date:        "Late 2024 - 2025",
		Title:       "Regulatory Development",
		Description: "FSRA (Financial Services Regulatory Authority of Ontario) consults with stakeholders to finalize the new benefit structures.",
		Status:      models.TimelineCurrent,
	},
	{
		Date:        "July 2026 (Targeted)",
		Title:       "Implementation",
		Description: "New policies issued after this date will reflect the revised mandatory and optional benefit choices.",
		Status:      models.TimelineUpcoming,
	},
}

var employeeTimeline = []models.TimelineStep{
	{
		Date:        "April 2024",
		Title:       "Budget Announcement",
		Description: "Ontario announced that most accident benefits will move from mandatory to optional, leaving medical, rehabilitation and attendant care as the only mandatory benefits.",
		Status:      models.TimelineCompleted,
	},
	{
		Date:        "2025",
		Title:       "Regulation & Guidance",
		Description: "FSRA publishes guidance on disclosure and on how customer-facing staff may describe optional benefits without giving advice.",
		Status:      models.TimelineCompleted,
	},
	{
		Date:        "Early 2026",
		Title:       "Staff Readiness",
		Description: "Customer-facing teams complete training on the new benefit structure, the explain-don't-advise rule and the updated disclosure forms.",
		Status:      models.TimelineCurrent,
	},
	{
		Date:        "July 1, 2026",
		Title:       "New Policies & Renewals",
		Description: "New business and renewals written on or after this date use the revised benefit choices. Customers must actively choose optional benefits.",
		Status:      models.TimelineUpcoming,
	},
}

var consumerCoverages = []models.CoverageItem{
	{
		ID:             "med-rehab-attendant",
		Title:          "Medical, Rehabilitation & Attendant Care",
		Summary:        "Covers medical expenses, physical therapy, and personal care support.",
		Description:    "This combines three critical benefits. It pays for reasonable medical and rehabilitation expenses (like physiotherapy, chiropractic care) and attendant care (assistance with personal hygiene, dressing) if you are injured in an accident.",
		Category:       models.CategoryMandatory,
		Group:          GroupHealth,
		MandatoryLimit: "$65,000 for non-catastrophic injuries; $1M for catastrophic.",
		IncreasedLimit: "Can be increased to $1M for non-catastrophic and an additional $1M for catastrophic.",
		Tip:            "These are the core funds that help you recover physically. Without sufficient limits, high-cost therapy could become an out-of-pocket expense.",
		Icon:           "🏥",
	},
	{
		ID:             "income-replacement",
		Title:          "Income Replacement Benefit",
		Summary:        "Replaces 70% of your gross weekly income if you can't work.",
		Description:    "If you are unable to work as a result of the accident, this benefit provides a weekly payment to help cover your lost wages.",
		Category:       models.CategoryMandatory,
		Group:          GroupIncome,
		MandatoryLimit: "70% of gross weekly income up to $400/week.",
		IncreasedLimit: "Can be increased to $600, $800, or $1,000 per week.",
		Tip:            "For many, $400/week is insufficient to cover rent, mortgage, or basic bills. Increasing this is vital for primary breadwinners.",
		Icon:           "💰",
	},
	{
		ID:             "caregiver",
		Title:          "Caregiver Benefit",
		Summary:        "Provides reimbursement for hiring help to care for dependents.",
		Description:    "If you are the primary caregiver for a child or dependent and can no longer perform those duties, this benefit covers the cost of hiring help.",
		Category:       models.CategoryOptional,
		Group:          GroupFamily,
		MandatoryLimit: "Only available for catastrophic injuries by default.",
		IncreasedLimit: "Can be extended to all injuries ($250/week for first dependent + $50 for others).",
		Tip:            "Stay-at-home parents or those caring for elderly relatives need this if they suddenly cannot perform their daily responsibilities.",
		Icon:           "👪",
	},
	{
		ID:             "housekeeping",
		Title:          "Housekeeping & Home Maintenance",
		Summary:        "Covers the cost of hiring someone to help with chores.",
		Description:    "If you can no longer perform your usual housekeeping or home maintenance duties, this benefit pays for someone to do them for you.",
		Category:       models.CategoryOptional,
		Group:          GroupIncome,
		MandatoryLimit: "Only available for catastrophic injuries by default.",
		IncreasedLimit: "Can be extended to all injuries (Up to $100/week).",
		Tip:            "Recovery is difficult if you're forced to perform heavy cleaning or maintenance. This benefit ensures your home remains liveable.",
		Icon:           "🏠",
	},
	{
		ID:             "death-funeral",
		Title:          "Death & Funeral Benefits",
		Summary:        "Lump sum payment to your survivors and funeral costs.",
		Description:    "Provides a payment to your spouse and dependents in the event of your death, plus a fixed amount for funeral expenses.",
		Category:       models.CategoryMandatory,
		Group:          GroupFamily,
		MandatoryLimit: "$25,000 to spouse; $10,000 to each dependent; $6,000 for funeral.",
		IncreasedLimit: "Can be increased to $50,000 for spouse; $20,000 for dependents; $8,000 for funeral.",
		Tip:            "Helps your family bridge the financial gap during an incredibly difficult time.",
		Icon:           "🕯️",
	},
}

var employeeCoverages = []models.CoverageItem{
	{
		ID:             "medical-rehab",
		Title:          "Medical and Rehabilitation",
		Summary:        "Pays for reasonable treatment, therapy and rehabilitation costs not covered by OHIP or a group plan.",
		Description:    "Covers physiotherapy, chiropractic care, prescriptions, assistive devices and rehabilitation programs after an accident. Remains mandatory on every policy.",
		Category:       models.CategoryMandatory,
		Group:          GroupHealth,
		MandatoryLimit: "$65,000 combined with attendant care for non-catastrophic injuries; $1M for catastrophic injuries.",
		IncreasedLimit: "Optional increases to $130,000 or $1M for non-catastrophic injuries, and an extra $1M for catastrophic injuries.",
		Tip:            "Medical and rehabilitation stays mandatory. Explain the limit and the available increases; never suggest which level is right.",
		Icon:           "🏥",
	},
	{
		ID:             "attendant-care",
		Title:          "Attendant Care",
		Summary:        "Pays for an aide or attendant to help with personal care while the injured person recovers.",
		Description:    "Covers assistance with dressing, bathing, feeding and other daily personal care when the injured person cannot manage alone.",
		Category:       models.CategoryMandatory,
		Group:          GroupHealth,
		MandatoryLimit: "Shares the $65,000 non-catastrophic limit with medical and rehabilitation; $1M for catastrophic injuries.",
		IncreasedLimit: "Increases follow the medical and rehabilitation options.",
		Tip:            "Customers often assume attendant care is separate money. Clarify that the non-catastrophic limit is shared.",
		Icon:           "🧑‍⚕️",
	},
	{
		ID:             "income-replacement",
		Title:          "Income Replacement",
		Summary:        "Weekly payment replacing part of lost employment or self-employment income.",
		Description:    "Pays 70% of gross weekly income when an injury prevents the customer from working. Becomes optional under the reform.",
		Category:       models.CategoryOptional,
		Group:          GroupIncome,
		MandatoryLimit: "No coverage unless purchased.",
		IncreasedLimit: "Purchased at $400 per week, with higher weekly maximums of $600, $800 or $1,000 available.",
		Tip:            "Ask whether the customer has other disability coverage so they can compare, but let them decide.",
		Icon:           "💰",
	},
	{
		ID:             "non-earner",
		Title:          "Non-Earner Benefit",
		Summary:        "Weekly payment for people who were not working and suffer a complete inability to carry on a normal life.",
		Description:    "Applies to students, retirees and others without employment income who are severely impaired after an accident.",
		Category:       models.CategoryOptional,
		Group:          GroupIncome,
		MandatoryLimit: "No coverage unless purchased.",
		IncreasedLimit: "$185 per week after a four-week waiting period when purchased.",
		Tip:            "Useful context for students and retirees who assume income replacement applies to them.",
		Icon:           "🧾",
	},
	{
		ID:             "housekeeping",
		Title:          "Housekeeping and Home Maintenance",
		Summary:        "Reimburses the cost of help with chores and upkeep the injured person can no longer do.",
		Description:    "Covers services such as cleaning, snow removal and lawn care when the injury prevents the customer from doing them.",
		Category:       models.CategoryOptional,
		Group:          GroupIncome,
		MandatoryLimit: "No coverage unless purchased.",
		IncreasedLimit: "Up to $100 per week for all injuries when purchased.",
		Tip:            "Homeowners who do their own maintenance are the customers most likely to ask about this one.",
		Icon:           "🏠",
	},
	{
		ID:             "caregiver",
		Title:          "Caregiver Benefit",
		Summary:        "Pays for someone to care for dependants when the injured person was their primary caregiver.",
		Description:    "Covers the cost of hiring care for children or dependent relatives the customer looked after before the accident.",
		Category:       models.CategoryOptional,
		Group:          GroupFamily,
		MandatoryLimit: "No coverage unless purchased.",
		IncreasedLimit: "$250 per week for the first dependant plus $50 for each additional dependant.",
		Tip:            "Relevant to stay-at-home parents and people caring for elderly relatives.",
		Icon:           "👪",
	},
	{
		ID:             "dependant-care",
		Title:          "Dependant Care",
		Summary:        "Covers extra childcare or dependant care costs incurred because of the accident.",
		Description:    "Reimburses additional expenses for the care of dependants while an employed customer recovers.",
		Category:       models.CategoryOptional,
		Group:          GroupFamily,
		MandatoryLimit: "No coverage unless purchased.",
		IncreasedLimit: "Up to $75 per week for the first dependant and $25 for each additional dependant, to a $150 weekly maximum.",
		Tip:            "Distinguish this from the caregiver benefit: it applies to working parents, not primary caregivers.",
		Icon:           "🧸",
	},
	{
		ID:             "death-funeral",
		Title:          "Death and Funeral",
		Summary:        "Lump-sum payments to survivors plus a fixed amount toward funeral costs.",
		Description:    "Pays the spouse and each dependant a lump sum if the customer dies as a result of an accident, and contributes to funeral expenses.",
		Category:       models.CategoryOptional,
		Group:          GroupFamily,
		MandatoryLimit: "No coverage unless purchased.",
		IncreasedLimit: "$25,000 to a spouse, $10,000 per dependant and $6,000 for funeral costs, with higher amounts available.",
		Tip:            "Approach with care. Explain what it pays and who receives it, nothing more.",
		Icon:           "🕯️",
	},
	{
		ID:             "personal-items",
		Title:          "Damage to Personal Items",
		Summary:        "Replaces clothing, glasses, tools and other personal items damaged in the accident.",
		Description:    "Covers reasonable repair or replacement costs for personal property carried in the vehicle or worn at the time of the accident.",
		Category:       models.CategoryOptional,
		Group:          GroupExpenses,
		MandatoryLimit: "No coverage unless purchased.",
		IncreasedLimit: "Reasonable repair or replacement costs, with limits set by the policy.",
		Tip:            "Customers who carry work equipment in their vehicle often ask whether it is covered.",
		Icon:           "🧰",
	},
	{
		ID:             "lost-education",
		Title:          "Lost Educational Expenses",
		Summary:        "Reimburses tuition, books and other education costs lost because an injury interrupts studies.",
		Description:    "Applies to students enrolled in elementary, secondary or post-secondary programs who cannot continue because of the accident.",
		Category:       models.CategoryOptional,
		Group:          GroupExpenses,
		MandatoryLimit: "No coverage unless purchased.",
		IncreasedLimit: "Up to $15,000 in lost tuition and education expenses.",
		Tip:            "Relevant to students and to parents insuring student drivers.",
		Icon:           "🎓",
	},
	{
		ID:             "visitor-expenses",
		Title:          "Visitor Expenses",
		Summary:        "Pays reasonable travel costs for family members visiting the injured person during treatment.",
		Description:    "Covers transportation, meals and lodging for certain family members who visit during recovery.",
		Category:       models.CategoryOptional,
		Group:          GroupExpenses,
		MandatoryLimit: "No coverage unless purchased.",
		IncreasedLimit: "Reasonable expenses for eligible relatives while the injured person receives treatment.",
		Tip:            "Customers whose family lives out of town often have not thought about this one.",
		Icon:           "🚗",
	},
	{
		ID:             "indexation",
		Title:          "Indexation Benefit",
		Summary:        "Adjusts certain weekly benefits each year to keep up with inflation.",
		Description:    "Increases eligible weekly and monetary benefits annually in line with the Consumer Price Index.",
		Category:       models.CategoryOptional,
		Group:          GroupExpenses,
		MandatoryLimit: "No coverage unless purchased.",
		IncreasedLimit: "Annual adjustment based on the Consumer Price Index.",
		Tip:            "Matters most for long recoveries, where fixed payments lose value over time.",
		Icon:           "📈",
	},
}

var quizQuestions = []models.QuizQuestion{
	{
		ID:                1,
		Prompt:            "Under the reformed accident benefits, which benefits remain mandatory on every Ontario auto policy?",
		Options:           []string{"Income replacement and death benefits", "Medical, rehabilitation and attendant care", "Caregiver and housekeeping", "All current benefits stay mandatory"},
		CorrectAnswer:     "Medical, rehabilitation and attendant care",
		FeedbackCorrect:   "Right. Medical, rehabilitation and attendant care stay mandatory. Most other benefits become optional.",
		FeedbackIncorrect: "Only medical, rehabilitation and attendant care stay mandatory. Most other benefits become optional.",
	},
	{
		ID:                2,
		Prompt:            "When do the new benefit choices apply to policies?",
		Options:           []string{"Immediately for all existing policies", "New business and renewals on or after July 1, 2026", "Only when a customer makes a claim", "January 1, 2025"},
		CorrectAnswer:     "New business and renewals on or after July 1, 2026",
		FeedbackCorrect:   "Correct. Policies written or renewed on or after July 1, 2026 use the new structure.",
		FeedbackIncorrect: "The change applies to new business and renewals written on or after July 1, 2026.",
	},
	{
		ID:                3,
		Prompt:            "A customer asks which optional benefits they should buy. What is the appropriate response?",
		Options:           []string{"Recommend the benefits most customers choose", "Recommend the cheapest combination", "Explain what each benefit covers and that the choice is theirs, referring them to a licensed advisor for advice", "Tell them optional benefits are unnecessary"},
		CorrectAnswer:     "Explain what each benefit covers and that the choice is theirs, referring them to a licensed advisor for advice",
		FeedbackCorrect:   "Exactly. Our role is to explain coverage definitions and limits, not to recommend products.",
		FeedbackIncorrect: "Recommending coverage is regulated advice. Explain what each benefit covers and let the customer decide.",
	},
	{
		ID:                4,
		Prompt:            "What is the standard non-catastrophic limit shared by medical, rehabilitation and attendant care?",
		Options:           []string{"$25,000", "$65,000", "$100,000", "$1,000,000"},
		CorrectAnswer:     "$65,000",
		FeedbackCorrect:   "Correct. The $65,000 non-catastrophic limit is shared across the three benefits.",
		FeedbackIncorrect: "The non-catastrophic limit is $65,000, shared across medical, rehabilitation and attendant care.",
	},
	{
		ID:                5,
		Prompt:            "Income replacement, when purchased, pays what share of gross weekly income?",
		Options:           []string{"50%", "70%", "80%", "100%"},
		CorrectAnswer:     "70%",
		FeedbackCorrect:   "Right. It pays 70% of gross weekly income up to the purchased weekly maximum.",
		FeedbackIncorrect: "Income replacement pays 70% of gross weekly income up to the purchased weekly maximum.",
	},
	{
		ID:                6,
		Prompt:            "Which benefit reimburses help with cleaning, snow removal and lawn care?",
		Options:           []string{"Attendant Care", "Caregiver Benefit", "Housekeeping and Home Maintenance", "Visitor Expenses"},
		CorrectAnswer:     "Housekeeping and Home Maintenance",
		FeedbackCorrect:   "Correct. Housekeeping and home maintenance covers chores the injured person can no longer do.",
		FeedbackIncorrect: "That is housekeeping and home maintenance, which covers chores the injured person can no longer do.",
	},
	{
		ID:                7,
		Prompt:            "Which benefit is designed for a stay-at-home parent who can no longer care for their children?",
		Options:           []string{"Caregiver Benefit", "Dependant Care", "Non-Earner Benefit", "Income Replacement"},
		CorrectAnswer:     "Caregiver Benefit",
		FeedbackCorrect:   "Right. The caregiver benefit pays for care when the injured person was the primary caregiver.",
		FeedbackIncorrect: "The caregiver benefit applies to primary caregivers. Dependant care is for working parents.",
	},
	{
		ID:                8,
		Prompt:            "A full-time student is injured and cannot finish the term. Which benefit addresses the lost tuition?",
		Options:           []string{"Lost Educational Expenses", "Damage to Personal Items", "Indexation Benefit", "Death and Funeral"},
		CorrectAnswer:     "Lost Educational Expenses",
		FeedbackCorrect:   "Correct. Lost educational expenses reimburses tuition and education costs.",
		FeedbackIncorrect: "Lost educational expenses is the benefit that reimburses tuition and education costs.",
	},
	{
		ID:                9,
		Prompt:            "What does the indexation benefit do?",
		Options:           []string{"Doubles the medical limit", "Adjusts eligible benefits annually for inflation", "Pays a lump sum at renewal", "Covers rental vehicles"},
		CorrectAnswer:     "Adjusts eligible benefits annually for inflation",
		FeedbackCorrect:   "Right. Indexation keeps eligible payments in line with the Consumer Price Index.",
		FeedbackIncorrect: "Indexation adjusts eligible benefits each year in line with the Consumer Price Index.",
	},
	{
		ID:                10,
		Prompt:            "If a customer declines every optional benefit, what accident benefits does their policy still include?",
		Options:           []string{"None", "Only death and funeral", "Medical, rehabilitation and attendant care", "Income replacement at $400 per week"},
		CorrectAnswer:     "Medical, rehabilitation and attendant care",
		FeedbackCorrect:   "Correct. The mandatory medical, rehabilitation and attendant care benefits remain.",
		FeedbackIncorrect: "The mandatory medical, rehabilitation and attendant care benefits always remain on the policy.",
	},
}

var scenarios = []models.Scenario{
	{
		ID:                   1,
		Title:                "The Self-Employed Contractor",
		Icon:                 "🔨",
		CustomerProfile:      "I run my own renovation business and I'm the only income for my household. I keep most of my tools in the truck, and I look after the house and yard myself. What happens if I get hurt?",
		Options:              []string{"Income Replacement", "Housekeeping and Home Maintenance", "Damage to Personal Items", "Caregiver Benefit", "Lost Educational Expenses", "Visitor Expenses"},
		CorrectCoverages:     []string{"Income Replacement", "Housekeeping and Home Maintenance", "Damage to Personal Items"},
		Explanation:          "The customer depends on their own income, maintains their home themselves and carries valuable equipment in the vehicle. Those three benefits speak directly to the concerns they raised.",
		ExplanationOption:    "Let me walk you through income replacement, housekeeping and home maintenance, and damage to personal items, including what each pays. I can't tell you which to choose, but a licensed broker can help you decide.",
		RecommendationOption: "You definitely need income replacement at the $1,000 level and the other two as well. I'd add them all to your policy today.",
	},
	{
		ID:                   2,
		Title:                "The Young Family",
		Icon:                 "👨‍👩‍👧",
		CustomerProfile:      "I stay home with our two toddlers while my partner works full time. If something happened to me in a crash, who would look after the kids?",
		Options:              []string{"Caregiver Benefit", "Dependant Care", "Death and Funeral", "Income Replacement", "Lost Educational Expenses", "Damage to Personal Items"},
		CorrectCoverages:     []string{"Caregiver Benefit", "Dependant Care", "Death and Funeral"},
		Explanation:          "The customer is the primary caregiver of young children and the household relies on that care. Benefits that cover care for dependants and support survivors match the concerns raised.",
		ExplanationOption:    "There are a few optional benefits related to dependants: the caregiver benefit, dependant care, and death and funeral. Here is what each one covers. The decision is yours, and a licensed advisor can help you weigh them.",
		RecommendationOption: "With two toddlers you should take the caregiver benefit and dependant care for sure. Death and funeral too, just to be safe.",
	},
	{
		ID:                   3,
		Title:                "The University Student",
		Icon:                 "🎓",
		CustomerProfile:      "I'm in second year at university and only work a few hours a week. My parents live four hours away. Do any of these new options even matter for me?",
		Options:              []string{"Lost Educational Expenses", "Non-Earner Benefit", "Visitor Expenses", "Caregiver Benefit", "Death and Funeral", "Housekeeping and Home Maintenance"},
		CorrectCoverages:     []string{"Lost Educational Expenses", "Non-Earner Benefit", "Visitor Expenses"},
		Explanation:          "A student with little employment income and family far away is most affected by interrupted studies, the lack of earnings-based benefits and the cost of relatives visiting during recovery.",
		ExplanationOption:    "Some optional benefits relate to students: lost educational expenses, the non-earner benefit and visitor expenses. I can explain each one and its limits, and you can decide, or talk it over with a licensed broker.",
		RecommendationOption: "Students should always buy lost educational expenses and the non-earner benefit. I'll add those for you.",
	},
	{
		ID:                   4,
		Title:                "The Retiree",
		Icon:                 "👵",
		CustomerProfile:      "I'm retired and live alone on a fixed pension. I still shovel my own driveway. I'm worried about a long recovery if I'm ever in an accident.",
		Options:              []string{"Housekeeping and Home Maintenance", "Indexation Benefit", "Death and Funeral", "Income Replacement", "Lost Educational Expenses", "Dependant Care"},
		CorrectCoverages:     []string{"Housekeeping and Home Maintenance", "Indexation Benefit", "Death and Funeral"},
		Explanation:          "A retiree on a fixed income who maintains their own home is concerned about chores during recovery, the value of payments over a long recovery and support for survivors.",
		ExplanationOption:    "Let me explain housekeeping and home maintenance, the indexation benefit, and death and funeral, and what each would pay. I'm not able to advise which to buy, but a licensed advisor can.",
		RecommendationOption: "At your age you really should buy housekeeping and indexation. Those are the best fit for retirees.",
	},
}
