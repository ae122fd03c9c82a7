package directory

// Catalog returns the static specialist directory. The platform ships a
// fixed roster; real inventory management is out of scope.
func Catalog() []*Therapist {
	return []*Therapist{
		{
			ID:            "t-101",
			Name:          "Dr. Meera Krishnan",
			Role:          "Clinical Psychologist",
			Experience:    "12+ yrs",
			Tags:          []string{"Anxiety", "Depression", "CBT"},
			Hours:         "320+ therapy hours",
			Progress:      "8/10",
			AudioDuration: "1:24",
			NextSlot:      "Today, 4:30 PM",
			Price:         1200,
		},
		{
			ID:            "t-102",
			Name:          "Dr. Arjun Nair",
			Role:          "Psychiatrist",
			Experience:    "9+ yrs",
			Tags:          []string{"Mood Disorders", "Sleep", "Medication"},
			Hours:         "250+ therapy hours",
			Progress:      "6/10",
			AudioDuration: "0:58",
			NextSlot:      "Tomorrow, 10:00 AM",
			Price:         1500,
		},
		{
			ID:            "t-103",
			Name:          "Dr. Sneha Pillai",
			Role:          "Counselling Therapist",
			Experience:    "7+ yrs",
			Tags:          []string{"Relationships", "Stress", "Mindfulness"},
			Hours:         "180+ therapy hours",
			Progress:      "9/10",
			AudioDuration: "1:05",
			NextSlot:      "Today, 6:00 PM",
			Price:         900,
		},
		{
			ID:            "t-104",
			Name:          "Dr. Rahul Menon",
			Role:          "Child & Adolescent Specialist",
			Experience:    "15+ yrs",
			Tags:          []string{"ADHD", "Autism", "Parenting"},
			Hours:         "400+ therapy hours",
			Progress:      "7/10",
			AudioDuration: "1:40",
			NextSlot:      "Fri, 11:30 AM",
			Price:         1800,
		},
		{
			ID:            "t-105",
			Name:          "Dr. Kavya Raman",
			Role:          "Trauma Specialist",
			Experience:    "10+ yrs",
			Tags:          []string{"PTSD", "EMDR", "Grief"},
			Hours:         "290+ therapy hours",
			Progress:      "5/10",
			AudioDuration: "1:12",
			NextSlot:      "Sat, 9:00 AM",
			Price:         1400,
		},
	}
}
