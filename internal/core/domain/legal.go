package domain

import "strings"

const ContactEmail = "support@niyambuddy.com"

type LegalSection struct {
	Heading string   `json:"heading"`
	Body    string   `json:"body,omitempty"`
	Items   []string `json:"items,omitempty"`
}

type LegalPage struct {
	Slug     string         `json:"slug"`
	Title    string         `json:"title"`
	Intro    string         `json:"intro"`
	Sections []LegalSection `json:"sections"`
	Summary  []string       `json:"summary"`
}

var privacyPolicy = LegalPage{
	Slug:  "privacy",
	Title: "Privacy Policy",
	Intro: "At Niyam Buddy we are committed to protecting your privacy. This policy explains how we collect, use, disclose and safeguard your data when you use our services. By using Niyam Buddy you agree to it; if you do not, please stop using the platform.",
	Sections: []LegalSection{
		{Heading: "1. Information We Collect", Body: "When you register we collect your name, email address and phone number. While you use the service we record your study logs, routine and goals, along with basic usage data."},
		{Heading: "2. How We Use Your Information", Items: []string{
			"Provide and improve our services",
			"Personalize your study routines and recommendations",
			"Analyze usage trends for better performance",
			"Prevent fraud and ensure security",
		}},
		{Heading: "3. Data Sharing & Disclosure", Body: "We do not sell your personal information. We may share data with:", Items: []string{
			"Service providers, for hosting, analytics and customer support",
			"Legal authorities, if required by law or to protect our rights",
			"A successor, in case of mergers or acquisitions",
		}},
		{Heading: "4. Data Security", Body: "We use industry-standard security measures. No online service is completely secure, so please use strong passwords and keep your login details private."},
		{Heading: "5. Your Privacy Rights", Items: []string{
			"Access, update, or delete your data",
			"Opt out of marketing emails",
			"Disable cookies via browser settings",
			"Request data portability",
		}},
		{Heading: "6. Third-Party Services", Body: "Niyam Buddy may integrate with third-party tools. These services have their own privacy policies and we are not responsible for their practices."},
		{Heading: "7. Children's Privacy", Body: "Our service is not intended for users under 13. If we discover that a child has provided personal data, we will delete it immediately."},
		{Heading: "8. Changes to This Policy", Body: "We may update this policy from time to time. Significant changes are announced by email or in the app."},
		{Heading: "9. Contact Us", Body: "For questions about this Privacy Policy, email us at " + ContactEmail + "."},
	},
	Summary: []string{
		"Transparent data collection",
		"No selling of personal info",
		"Strong security measures",
		"User control over data",
	},
}

var termsOfUse = LegalPage{
	Slug:  "terms",
	Title: "Terms of Use",
	Intro: "Welcome to Niyam Buddy! These terms govern your use of our study companion platform. By accessing or using Niyam Buddy you agree to comply with them.",
	Sections: []LegalSection{
		{Heading: "1. Acceptance of Terms", Body: "By using Niyam Buddy, you confirm that:", Items: []string{
			"You are at least 13 years old",
			"You will provide accurate registration information",
			"You will not share your account credentials",
			"You will comply with all applicable laws",
		}},
		{Heading: "2. User Responsibilities", Items: []string{
			"Use Niyam Buddy only for lawful purposes",
			"Do not disrupt or interfere with the security of the service",
			"Do not reverse engineer any part of the platform",
			"Do not use bots, scrapers or other automated tools",
			"Do not upload harmful or offensive content",
		}},
		{Heading: "3. Intellectual Property", Body: "All content and features on Niyam Buddy are protected by intellectual property laws. You keep ownership of the content you create and grant us a license to use it to run the service."},
		{Heading: "4. Disclaimers", Body: "Niyam Buddy is provided \"as is\" without warranties of any kind. We do not guarantee uninterrupted service or specific academic results. We may modify or discontinue the service at any time."},
		{Heading: "5. Limitation of Liability", Body: "To the fullest extent permitted by law we are not liable for indirect, incidental or consequential damages, nor for third-party services linked from the platform."},
		{Heading: "6. Account Termination", Body: "We may suspend or terminate accounts that violate these terms, show fraudulent activity or when required by law. You may close your account at any time."},
		{Heading: "7. Governing Law", Body: "These terms are governed by the laws of the jurisdiction in which Niyam Buddy operates, without regard to conflict of law principles."},
		{Heading: "8. Changes to Terms", Body: "We may update these terms periodically and will notify you of significant changes by email or in-app notice."},
		{Heading: "9. Contact Information", Body: "Questions about these terms can be sent to " + ContactEmail + "."},
	},
	Summary: []string{
		"You retain ownership of your content",
		"We may terminate accounts for violations",
		"Service provided 'as is' with no warranties",
		"Limited liability for the platform",
		"Terms may be updated periodically",
	},
}

// LegalPageBySlug returns "privacy" or "terms".
func LegalPageBySlug(slug string) (LegalPage, error) {
	switch strings.ToLower(strings.TrimSpace(slug)) {
	case privacyPolicy.Slug:
		return privacyPolicy, nil
	case termsOfUse.Slug:
		return termsOfUse, nil
	default:
		return LegalPage{}, ErrNotFound
	}
}
