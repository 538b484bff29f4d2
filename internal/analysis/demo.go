package analysis

import "github.com/vaanisetu/scheme-cli/internal/model"

func intPtr(v int) *int { return &v }

// Demo returns a fixed, realistic response for demonstrations where the
// live pipeline must not be exercised.
func Demo() model.AnalysisResponse {
	return model.AnalysisResponse{
		Profile: model.Profile{
			Occupation: model.OccupationFarmer,
			Category:   model.CategoryFarmer,
			Income:     intPtr(40000),
			Age:        intPtr(45),
			State:      "tamil nadu",
		},
		ProfileSummary: "Farmer from Tamil Nadu with low income",
		Schemes: []model.SchemeMatch{
			{
				Name:             "PM Kisan Samman Nidhi",
				Score:            92,
				Confidence:       model.ConfidenceHigh,
				EligibilityScore: "high",
				Reason:           "You likely qualify because you are a farmer and you meet the financial requirements.",
				SimpleReason:     "You are a farmer, so this scheme suits you.",
				Documents:        []string{"Aadhar Card", "Land Ownership Proof", "Bank Account Number"},
				Benefit:          "₹6000 per year directly to your bank account.",
				Steps:            []string{"Visit the local CSC center", "Register on PM-Kisan portal", "Verify Aadhar"},
				MatchedFactors:   []string{"Occupation", "Income (No Limit)", "Location (All India)"},
				TargetGroups:     []string{"farmer"},
				SchemeType:       model.TypeFarmerSupport,
				EstimatedValue:   "₹6000",
				OfficialURL:      "https://pmkisan.gov.in/",
			},
			{
				Name:             "Pradhan Mantri Fasal Bima Yojana",
				Score:            85,
				Confidence:       model.ConfidenceHigh,
				EligibilityScore: "high",
				Reason:           "As a farmer, you can insure your crops at subsidized rates.",
				SimpleReason:     "As a farmer, you can insure your crops.",
				Documents:        []string{"Aadhar Card", "Land records", "Sowing certificate"},
				Benefit:          "Crop insurance at subsidized premiums.",
				Steps:            []string{"Provide land details", "Pay premium", "Get policy ticket"},
				MatchedFactors:   []string{"Occupation", "Location (All India)"},
				TargetGroups:     []string{"farmer"},
				SchemeType:       model.TypeInsurance,
				EstimatedValue:   "Insurance",
				OfficialURL:      "https://pmfby.gov.in/",
			},
			{
				Name:             "Ayushman Bharat - PMJAY",
				Score:            70,
				Confidence:       model.ConfidenceMedium,
				EligibilityScore: "medium",
				Reason:           "Health insurance coverage needs income verification.",
				SimpleReason:     "Based on your income, this scheme is a good fit.",
				Documents:        []string{"Aadhaar Card", "Ration card", "Income certificate"},
				Benefit:          "Health cover of Rs. 5 lakhs per family per year.",
				Steps:            []string{"Check eligibility on portal", "Visit empanelled hospital"},
				MatchedFactors:   []string{"Income Level"},
				TargetGroups:     []string{"general", "worker", "farmer", "women", "senior"},
				SchemeType:       model.TypeHealth,
				EstimatedValue:   "₹500000",
				OfficialURL:      "https://pmjay.gov.in/",
			},
		},
		BenefitsSummary:  "Good news! We found 3 schemes tailored to you including PM Kisan Samman Nidhi and PMFBY.",
		SpeakableText:    "You qualify for the PM Kisan Samman Nidhi scheme and 2 others. Read below for instructions on how to apply.",
		ProcessingTimeMS: 10,
		DataSource:       DataSourceLabel,
	}
}
