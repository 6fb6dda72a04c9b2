package console

import (
	"github.com/martinle068/FitnnessApp/internal/domain"
)

func genderIndex(g domain.Gender) int {
	if g == domain.Female {
		return 1
	}
	return 0
}

// AskProfile prompts for every profile field. A valid cur supplies the
// defaults for empty answers.
func AskProfile(p *Prompter, cur domain.Profile) (domain.Profile, error) {
	editing := cur.Validate() == nil
	var out domain.Profile
	var err error

	if out.Name, err = p.Line("Name"); err != nil {
		return out, err
	}
	if out.Name == "" && editing {
		out.Name = cur.Name
	}

	def := -1
	if editing {
		def = genderIndex(cur.Gender)
	}
	g, err := p.Choice("Gender", []string{domain.Male.String(), domain.Female.String()}, def)
	if err != nil {
		return out, err
	}
	out.Gender = []domain.Gender{domain.Male, domain.Female}[g]

	if editing {
		out.Age, err = p.OptionalInt("Age", 1, 120, cur.Age)
	} else {
		out.Age, err = p.Int("Age", 1, 120)
	}
	if err != nil {
		return out, err
	}
	if editing {
		out.HeightCM, err = p.OptionalFloat("Height (cm)", 50, 260, cur.HeightCM)
	} else {
		out.HeightCM, err = p.Float("Height (cm)", 50, 260)
	}
	if err != nil {
		return out, err
	}
	if editing {
		out.WeightKG, err = p.OptionalFloat("Weight (kg)", 20, 400, cur.WeightKG)
	} else {
		out.WeightKG, err = p.Float("Weight (kg)", 20, 400)
	}
	if err != nil {
		return out, err
	}

	levels := make([]string, len(domain.ActivityLevels))
	for i, a := range domain.ActivityLevels {
		levels[i] = a.String()
	}
	def = -1
	if editing {
		def = int(cur.ActivityLevel)
	}
	a, err := p.Choice("Activity level", levels, def)
	if err != nil {
		return out, err
	}
	out.ActivityLevel = domain.ActivityLevels[a]
	return out, out.Validate()
}

// AskGoals prompts for the fitness goal and target weight. The custom
// calorie override is carried over from cur unchanged.
func AskGoals(p *Prompter, cur domain.Goals) (domain.Goals, error) {
	out := cur
	goals := make([]string, len(domain.FitnessGoals))
	for i, g := range domain.FitnessGoals {
		goals[i] = g.String()
	}
	g, err := p.Choice("Fitness goal", goals, int(cur.FitnessGoal))
	if err != nil {
		return out, err
	}
	out.FitnessGoal = domain.FitnessGoals[g]

	if out.TargetWeightKG, err = p.OptionalFloat("Target weight (kg)", 0, 400, cur.TargetWeightKG); err != nil {
		return out, err
	}

	bf := 0.0
	if cur.BodyFatPercentage != nil {
		bf = *cur.BodyFatPercentage
	}
	if bf, err = p.OptionalFloat("Body fat % (0 = not recorded)", 0, 100, bf); err != nil {
		return out, err
	}
	out.BodyFatPercentage = nil
	if bf > 0 {
		out.BodyFatPercentage = &bf
	}
	return out, out.Validate()
}
