package service

import (
	"career_guide_backend/internal/model"
	"encoding/json"
	"testing"
)

func onboardingFixture(currentYear, graduationYear int, interests ...string) *model.CareerOnboarding {
	if len(interests) == 0 {
		interests = []string{"web-dev"}
	}
	return &model.CareerOnboarding{
		UserID:          1,
		PrimaryGoal:     "job",
		Timeframe:       "2-4 years",
		CurrentLevel:    "beginner",
		Interests:       interests,
		CurrentYear:     currentYear,
		GraduationYear:  graduationYear,
		CurrentSemester: "Fall",
	}
}

func TestGenerateRoadmapStructure(t *testing.T) {
	data := GenerateRoadmap(onboardingFixture(2, 4))

	if got := len(data.Years); got != 3 {
		t.Fatalf("expected 3 years for year 2 to 4, got %d", got)
	}
	if data.TotalDuration != "3 years" {
		t.Errorf("expected total duration '3 years', got %q", data.TotalDuration)
	}
	if data.Years[0].Year != 2 || data.Years[2].Year != 4 {
		t.Errorf("year numbers should run 2..4, got %d..%d", data.Years[0].Year, data.Years[2].Year)
	}
	if data.Years[0].Title != "Foundation Building" {
		t.Errorf("first year title should be 'Foundation Building', got %q", data.Years[0].Title)
	}

	for _, year := range data.Years {
		if got := len(year.Months); got != 12 {
			t.Fatalf("year %d should have 12 months, got %d", year.Year, got)
		}
		if year.Months[0].Month != "January" || year.Months[11].Month != "December" {
			t.Errorf("months should run January..December, got %q..%q", year.Months[0].Month, year.Months[11].Month)
		}
		for _, month := range year.Months {
			if len(month.Weeks) == 0 {
				t.Fatalf("month %q of year %d has no weeks", month.Month, year.Year)
			}
			for _, week := range month.Weeks {
				if got := len(week.DailyTasks); got != 7 {
					t.Fatalf("week %d should have 7 days, got %d", week.Week, got)
				}
				for di, day := range week.DailyTasks {
					want := 4
					if day.Day == "Saturday" || day.Day == "Sunday" {
						want = 2
					}
					if got := len(day.Tasks); got != want {
						t.Errorf("%s (day %d) should have %d tasks, got %d", day.Day, di, want, got)
					}
				}
			}
		}
	}
}

func TestGenerateRoadmapYearClamping(t *testing.T) {
	t.Run("long programs reuse the final title", func(t *testing.T) {
		data := GenerateRoadmap(onboardingFixture(1, 6))
		if got := len(data.Years); got != 6 {
			t.Fatalf("expected 6 years, got %d", got)
		}
		for _, year := range data.Years[3:] {
			if year.Title != "Advanced Mastery" {
				t.Errorf("year %d title should clamp to 'Advanced Mastery', got %q", year.Year, year.Title)
			}
		}
	})

	t.Run("graduation in the past still yields one year", func(t *testing.T) {
		data := GenerateRoadmap(onboardingFixture(4, 2))
		if got := len(data.Years); got != 1 {
			t.Fatalf("expected 1 year, got %d", got)
		}
		if data.TotalDuration != "1 year" {
			t.Errorf("expected '1 year', got %q", data.TotalDuration)
		}
	})
}

func TestGenerateRoadmapTaskIDsUnique(t *testing.T) {
	data := GenerateRoadmap(onboardingFixture(1, 4))

	seen := make(map[string]bool)
	for _, year := range data.Years {
		for _, month := range year.Months {
			for _, week := range month.Weeks {
				for _, day := range week.DailyTasks {
					for _, task := range day.Tasks {
						if task.ID == "" {
							t.Fatal("task ID must not be empty")
						}
						if seen[task.ID] {
							t.Fatalf("duplicate task ID %q", task.ID)
						}
						seen[task.ID] = true
					}
				}
			}
		}
	}
}

func TestGenerateRoadmapDeterministic(t *testing.T) {
	o := onboardingFixture(1, 4)

	first, err := json.Marshal(GenerateRoadmap(o))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(GenerateRoadmap(o))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("same onboarding answers must produce identical roadmaps")
	}
}

func TestGenerateRoadmapInterestSelection(t *testing.T) {
	t.Run("unknown interest falls back to web-dev content", func(t *testing.T) {
		known := GenerateRoadmap(onboardingFixture(1, 2, "web-dev"))
		unknown := GenerateRoadmap(onboardingFixture(1, 2, "underwater-basket-weaving"))
		if known.Years[0].Goal != unknown.Years[0].Goal {
			t.Errorf("unknown interest should use the web-dev curriculum, got goal %q", unknown.Years[0].Goal)
		}
	})

	t.Run("stub interests get generic months", func(t *testing.T) {
		data := GenerateRoadmap(onboardingFixture(1, 2, "cybersecurity"))
		for _, month := range data.Years[0].Months {
			if got := len(month.Weeks); got != 4 {
				t.Fatalf("generic months should have 4 weeks, got %d", got)
			}
		}
	})
}

func TestGenerateRoadmapGoalPhrases(t *testing.T) {
	o := onboardingFixture(1, 2)
	o.PrimaryGoal = "startup"
	if data := GenerateRoadmap(o); data.OverallGoal != goalPhrases["startup"] {
		t.Errorf("unexpected overall goal %q", data.OverallGoal)
	}

	o.PrimaryGoal = "something-else"
	if data := GenerateRoadmap(o); data.OverallGoal != defaultGoalPhrase {
		t.Errorf("unmapped goal should use the default phrase, got %q", data.OverallGoal)
	}
}
