package tenants

// Demo tenant catalog seeded into NewFixtureStore. The data intentionally
// covers the interesting shapes: users with multi-country pay attributes,
// countries left not-configured, users without a team assignment, and teams
// whose members span attribute configurations.

func strp(s string) *string { return &s }

func configured(level, reference string, units ...BusinessUnit) PayAttributes {
	return PayAttributes{
		AccessByLevel:  true,
		AccessLevel:    strp(level),
		ReferenceLevel: strp(reference),
		BusinessUnits:  units,
	}
}

// notConfigured is the "override exists but is not set up" record: all
// dependent fields stay nil.
func notConfigured() PayAttributes {
	return PayAttributes{AccessByLevel: false}
}

func fixtureTenants() []*Tenant {
	return []*Tenant{
		{
			ID:                 "1a2b3c4d-1234-5678-9abc-def012345678",
			Name:               "Acme Corporation",
			SubscribedProducts: []string{"Pay & Markets", "Assess", "KF Architect", "Profile Manager"},
			IdentityType:       IdentityKF1,
			Teams: []Team{
				{
					TeamID:      "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
					Name:        "Profile User",
					Description: "Users with access to profile features",
					Members: []string{
						"550e8400-e29b-41d4-a716-446655440001",
						"550e8400-e29b-41d4-a716-446655440002",
					},
				},
				{
					TeamID:      "6ba7b811-9dad-11d1-80b4-00c04fd430c8",
					Name:        "Super Admin",
					Description: "System administrators with full access and control",
					Members:     []string{"550e8400-e29b-41d4-a716-446655440003"},
				},
				{
					TeamID:      "6ba7b812-9dad-11d1-80b4-00c04fd430c9",
					Name:        "Tableau User",
					Description: "Users with access to Tableau dashboards",
					Members:     []string{"550e8400-e29b-41d4-a716-446655440020"},
				},
			},
			Users: []User{
				{
					UserID:    "550e8400-e29b-41d4-a716-446655440001",
					Email:     "alice.smith@acme.com",
					FirstName: "Alice",
					LastName:  "Smith",
					TeamID:    strp("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
					PayAttributes: []CountryAttributes{
						{Country: "United States", Attributes: configured("Non Executive", "Level 15",
							BusinessUnit{Name: "Engineering Division", AccessEnabled: true},
							BusinessUnit{Name: "Product Development", AccessEnabled: true},
						)},
						{Country: "Canada", Attributes: configured("Non Executive", "Level 15",
							BusinessUnit{Name: "Engineering Division", AccessEnabled: true},
						)},
					},
				},
				{
					UserID:    "550e8400-e29b-41d4-a716-446655440002",
					Email:     "bob.jones@acme.com",
					FirstName: "Bob",
					LastName:  "Jones",
					TeamID:    strp("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
					PayAttributes: []CountryAttributes{
						{Country: "United States", Attributes: configured("Non Executive", "Level 20",
							BusinessUnit{Name: "Engineering Division", AccessEnabled: true},
							BusinessUnit{Name: "Infrastructure Team", AccessEnabled: true},
						)},
						{Country: "Germany", Attributes: notConfigured()},
					},
				},
				{
					UserID:    "550e8400-e29b-41d4-a716-446655440003",
					Email:     "claire.white@acme.com",
					FirstName: "Claire",
					LastName:  "White",
					TeamID:    strp("6ba7b811-9dad-11d1-80b4-00c04fd430c8"),
					PayAttributes: []CountryAttributes{
						{Country: "United States", Attributes: configured("Executive", "Level 35",
							BusinessUnit{Name: "Product Management", AccessEnabled: true},
							BusinessUnit{Name: "Strategy Division", AccessEnabled: true},
							BusinessUnit{Name: "Executive Office", AccessEnabled: true},
						)},
					},
				},
				{
					UserID:    "550e8400-e29b-41d4-a716-446655440020",
					Email:     "sarah.designer@acme.com",
					FirstName: "Sarah",
					LastName:  "Designer",
					TeamID:    strp("6ba7b812-9dad-11d1-80b4-00c04fd430c9"),
				},
				{
					// Deliberately unassigned: exercises the no-team path.
					UserID:    "550e8400-e29b-41d4-a716-446655440021",
					Email:     "mike.tester@acme.com",
					FirstName: "Mike",
					LastName:  "Tester",
				},
			},
		},
		{
			ID:                 "2b3c4d5e-2345-6789-abcd-ef1234567890",
			Name:               "Beta Enterprises",
			SubscribedProducts: []string{"Profile Manager", "Pay Equity", "KF Architect"},
			IdentityType:       IdentityHub,
			ExistingClient:     true,
			Teams: []Team{
				{
					TeamID:      "6ba7b813-9dad-11d1-80b4-00c04fd430c8",
					Name:        "Executive Team",
					Description: "Company leadership",
					Members:     []string{"550e8400-e29b-41d4-a716-446655440060"},
				},
			},
			Users: []User{
				{
					UserID:    "550e8400-e29b-41d4-a716-446655440060",
					Email:     "executive.brandon@beta.com",
					FirstName: "Brandon",
					LastName:  "Executive",
					TeamID:    strp("6ba7b813-9dad-11d1-80b4-00c04fd430c8"),
				},
			},
		},
		{
			ID:                 "3c4d5e6f-3456-789a-bcde-f12345678901",
			Name:               "Gamma Group",
			SubscribedProducts: []string{"Pay & Markets", "Profile Manager", "Assess", "Pay Equity", "KF Architect"},
			IdentityType:       IdentityKF1,
			Teams: []Team{
				{
					TeamID:      "6ba7b814-9dad-11d1-80b4-00c04fd430c8",
					Name:        "Research & Development",
					Description: "Innovation and product development",
					Members: []string{
						"550e8400-e29b-41d4-a716-446655440007",
						"550e8400-e29b-41d4-a716-446655440008",
					},
				},
				{
					TeamID:      "6ba7b815-9dad-11d1-80b4-00c04fd430c8",
					Name:        "Human Resources",
					Description: "Employee management and organizational development",
					Members:     []string{"550e8400-e29b-41d4-a716-446655440009"},
				},
			},
			Users: []User{
				{
					UserID:    "550e8400-e29b-41d4-a716-446655440007",
					Email:     "grace.lee@gamma.com",
					FirstName: "Grace",
					LastName:  "Lee",
					TeamID:    strp("6ba7b814-9dad-11d1-80b4-00c04fd430c8"),
					PayAttributes: []CountryAttributes{
						{Country: "United Kingdom", Attributes: configured("Non Executive", "Level 12",
							BusinessUnit{Name: "R&D Division", AccessEnabled: true},
							BusinessUnit{Name: "Innovation Lab", AccessEnabled: true},
						)},
						{Country: "France", Attributes: configured("Non Executive", "Level 12",
							BusinessUnit{Name: "R&D Division", AccessEnabled: true},
						)},
					},
				},
				{
					UserID:    "550e8400-e29b-41d4-a716-446655440008",
					Email:     "henry.turner@gamma.com",
					FirstName: "Henry",
					LastName:  "Turner",
					TeamID:    strp("6ba7b814-9dad-11d1-80b4-00c04fd430c8"),
					PayAttributes: []CountryAttributes{
						{Country: "United Kingdom", Attributes: configured("Non Executive", "Level 22",
							BusinessUnit{Name: "R&D Division", AccessEnabled: true},
							BusinessUnit{Name: "Advanced Projects", AccessEnabled: true},
						)},
						{Country: "Italy", Attributes: notConfigured()},
					},
				},
				{
					UserID:    "550e8400-e29b-41d4-a716-446655440009",
					Email:     "isabel.king@gamma.com",
					FirstName: "Isabel",
					LastName:  "King",
					TeamID:    strp("6ba7b815-9dad-11d1-80b4-00c04fd430c8"),
					PayAttributes: []CountryAttributes{
						{Country: "United Kingdom", Attributes: configured("Non Executive", "Level 25",
							BusinessUnit{Name: "Human Resources", AccessEnabled: true},
							BusinessUnit{Name: "Talent Acquisition", AccessEnabled: true},
							BusinessUnit{Name: "Employee Relations", AccessEnabled: true},
						)},
					},
				},
			},
		},
		{
			ID:                 "4d5e6f7a-4567-89ab-cdef-123456789012",
			Name:               "Delta Solutions",
			SubscribedProducts: []string{"Assess", "Pay Equity", "Profile Manager"},
			IdentityType:       IdentityKF1,
			Teams: []Team{
				{
					TeamID:      "6ba7b816-9dad-11d1-80b4-00c04fd430c8",
					Name:        "Consulting",
					Description: "Client advisory and delivery",
					Members:     []string{"550e8400-e29b-41d4-a716-446655440012"},
				},
			},
			Users: []User{
				{
					UserID:    "550e8400-e29b-41d4-a716-446655440012",
					Email:     "laura.adams@delta.com",
					FirstName: "Laura",
					LastName:  "Adams",
					TeamID:    strp("6ba7b816-9dad-11d1-80b4-00c04fd430c8"),
				},
			},
		},
		{
			ID:                 "5e6f7a8b-5678-9abc-def0-234567890123",
			Name:               "Epsilon Partners",
			SubscribedProducts: []string{"Pay & Markets", "Profile Manager"},
			IdentityType:       IdentityKF1,
			Teams: []Team{
				{
					TeamID:      "6ba7b818-9dad-11d1-80b4-00c04fd430c8",
					Name:        "Finance",
					Description: "Financial planning and analysis",
					Members: []string{
						"550e8400-e29b-41d4-a716-446655440014",
						"550e8400-e29b-41d4-a716-446655440015",
					},
				},
				{
					TeamID:      "6ba7b819-9dad-11d1-80b4-00c04fd430c8",
					Name:        "Legal",
					Description: "Legal compliance and risk management",
					Members:     []string{"550e8400-e29b-41d4-a716-446655440016"},
				},
			},
			Users: []User{
				{
					UserID:    "550e8400-e29b-41d4-a716-446655440014",
					Email:     "nathan.green@epsilon.com",
					FirstName: "Nathan",
					LastName:  "Green",
					TeamID:    strp("6ba7b818-9dad-11d1-80b4-00c04fd430c8"),
					PayAttributes: []CountryAttributes{
						{Country: "Australia", Attributes: configured("Executive", "Level 32",
							BusinessUnit{Name: "Finance Division", AccessEnabled: true},
							BusinessUnit{Name: "Treasury", AccessEnabled: true},
							BusinessUnit{Name: "Financial Planning", AccessEnabled: true},
						)},
						{Country: "New Zealand", Attributes: configured("Executive", "Level 32",
							BusinessUnit{Name: "Finance Division", AccessEnabled: true},
						)},
					},
				},
				{
					UserID:    "550e8400-e29b-41d4-a716-446655440015",
					Email:     "olivia.hughes@epsilon.com",
					FirstName: "Olivia",
					LastName:  "Hughes",
					TeamID:    strp("6ba7b818-9dad-11d1-80b4-00c04fd430c8"),
					PayAttributes: []CountryAttributes{
						{Country: "Australia", Attributes: configured("Non Executive", "Level 18",
							BusinessUnit{Name: "Finance Division", AccessEnabled: true},
							BusinessUnit{Name: "Budget Planning", AccessEnabled: true},
						)},
						{Country: "Singapore", Attributes: notConfigured()},
					},
				},
				{
					UserID:    "550e8400-e29b-41d4-a716-446655440016",
					Email:     "paul.baker@epsilon.com",
					FirstName: "Paul",
					LastName:  "Baker",
					TeamID:    strp("6ba7b819-9dad-11d1-80b4-00c04fd430c8"),
					PayAttributes: []CountryAttributes{
						{Country: "Australia", Attributes: configured("Non Executive", "Level 28",
							BusinessUnit{Name: "Legal Division", AccessEnabled: true},
							BusinessUnit{Name: "Compliance", AccessEnabled: true},
							BusinessUnit{Name: "Contract Management", AccessEnabled: true},
						)},
					},
				},
			},
		},
		{
			ID:                 "6f7a8b9c-6789-abcd-ef01-345678901234",
			Name:               "TechStart Inc",
			SubscribedProducts: []string{"Assess", "KF Assess", "Profile Manager"},
			IdentityType:       IdentityKF1,
			Users: []User{
				{
					UserID:    "550e8400-e29b-41d4-a716-446655440130",
					Email:     "founder.zoe@techstart.io",
					FirstName: "Zoe",
					LastName:  "Founder",
				},
			},
			Teams: []Team{},
		},
		{
			ID:                 "7a8b9c0d-789a-bcde-f012-456789012345",
			Name:               "Global Finance Corp",
			SubscribedProducts: []string{"Pay & Markets", "KF Pay", "Tableau"},
			IdentityType:       IdentityHubMultiRater,
			ExistingClient:     true,
			SSO:                true,
			Teams: []Team{
				{
					TeamID:      "6ba7b820-9dad-11d1-80b4-00c04fd430c8",
					Name:        "Trading",
					Description: "Market operations",
					Members:     []string{"550e8400-e29b-41d4-a716-446655440140"},
				},
			},
			Users: []User{
				{
					UserID:    "550e8400-e29b-41d4-a716-446655440140",
					Email:     "trader.ken@globalfinance.com",
					FirstName: "Ken",
					LastName:  "Trader",
					TeamID:    strp("6ba7b820-9dad-11d1-80b4-00c04fd430c8"),
					PayAttributes: []CountryAttributes{
						{Country: "Japan", Attributes: configured("Executive", "Level 30",
							BusinessUnit{Name: "Trading Desk", AccessEnabled: true},
						)},
					},
				},
			},
		},
		{
			ID:                 "8b9c0d1e-89ab-cdef-0123-567890123456",
			Name:               "Healthcare Solutions Ltd",
			SubscribedProducts: []string{"Assess", "Listen", "Profile Manager"},
			IdentityType:       IdentityMultiRater,
			ExistingClient:     true,
			Users: []User{
				{
					UserID:    "550e8400-e29b-41d4-a716-446655440150",
					Email:     "nurse.amy@healthsolutions.co.uk",
					FirstName: "Amy",
					LastName:  "Nurse",
				},
			},
			Teams: []Team{},
		},
		{
			ID:                 "9c0d1e2f-9abc-def0-1234-678901234567",
			Name:               "Retail Innovations",
			SubscribedProducts: []string{"KF Architect", "Tableau", "Listen"},
			IdentityType:       IdentityKF1,
			Users:              []User{},
			Teams:              []Team{},
		},
	}
}
