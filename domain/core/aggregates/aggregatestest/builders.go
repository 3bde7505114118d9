// Package aggregatestest provides builders for collections and skills in
// tests.
package aggregatestest

import (
	"strconv"

	"editor-backend/domain/core/aggregates"
	"editor-backend/domain/core/entities"
	"editor-backend/domain/core/valueobjects"
)

// CollectionBuilder helps create test collections with default values
type CollectionBuilder struct {
	dict aggregates.CollectionDict
}

func NewCollectionBuilder() *CollectionBuilder {
	return &CollectionBuilder{
		dict: aggregates.CollectionDict{
			ID:            "collection_id",
			Title:         "Collection Title",
			Objective:     "Collection Objective",
			LanguageCode:  "en",
			Category:      "Algebra",
			Tags:          []string{"math"},
			Version:       1,
			SchemaVersion: 6,
			Nodes:         []entities.CollectionNodeDict{},
		},
	}
}

func (b *CollectionBuilder) WithID(id string) *CollectionBuilder {
	b.dict.ID = id
	return b
}

func (b *CollectionBuilder) WithTitle(title string) *CollectionBuilder {
	b.dict.Title = title
	return b
}

func (b *CollectionBuilder) WithTags(tags ...string) *CollectionBuilder {
	b.dict.Tags = tags
	return b
}

// WithExploration adds a node whose summary is built from explorationID
func (b *CollectionBuilder) WithExploration(explorationID string) *CollectionBuilder {
	b.dict.Nodes = append(b.dict.Nodes, entities.CollectionNodeDict{
		ExplorationID:      explorationID,
		ExplorationSummary: ExplorationSummary(explorationID),
	})
	return b
}

// Dict returns the backend dict the builder describes
func (b *CollectionBuilder) Dict() aggregates.CollectionDict {
	return b.dict
}

// Build creates the collection, panicking on invalid input
func (b *CollectionBuilder) Build() *aggregates.Collection {
	c, err := aggregates.NewCollectionFromBackendDict(b.dict)
	if err != nil {
		panic(err)
	}
	return c
}

// ExplorationSummary returns a public summary for explorationID
func ExplorationSummary(explorationID string) *valueobjects.ExplorationSummary {
	return &valueobjects.ExplorationSummary{
		ID:           explorationID,
		Title:        "Exploration " + explorationID,
		Objective:    "Learn " + explorationID,
		Category:     "Algebra",
		LanguageCode: "en",
		Status:       valueobjects.ExplorationStatusPublic,
		Tags:         []string{},
	}
}

// SkillBuilder helps create test skills with default values. The defaults
// describe skill "1" with misconceptions "2" and "4", an Easy rubric, two
// worked examples and prerequisite "skill_1".
type SkillBuilder struct {
	dict aggregates.SkillDict
}

func NewSkillBuilder() *SkillBuilder {
	return &SkillBuilder{
		dict: aggregates.SkillDict{
			ID:           "1",
			Description:  "test description",
			LanguageCode: "en",
			Version:      3,
			Misconceptions: []entities.MisconceptionDict{
				MisconceptionDict("2"),
				MisconceptionDict("4"),
			},
			Rubrics: []entities.RubricDict{
				{Difficulty: "Easy", Explanations: []string{"explanation"}},
			},
			SkillContents: entities.ConceptCardDict{
				Explanation:    valueobjects.MustSubtitledHTML("test explanation", "explanation"),
				WorkedExamples: []entities.WorkedExample{WorkedExample(1), WorkedExample(2)},
				RecordedVoiceovers: entities.RecordedVoiceoversDict{
					VoiceoversMapping: valueobjects.VoiceoversMapping{
						"explanation":        {},
						"worked_example_q_1": {},
						"worked_example_e_1": {},
						"worked_example_q_2": {},
						"worked_example_e_2": {},
					},
				},
			},
			NextMisconceptionID:  5,
			PrerequisiteSkillIDs: []string{"skill_1"},
		},
	}
}

func (b *SkillBuilder) WithID(id string) *SkillBuilder {
	b.dict.ID = id
	return b
}

func (b *SkillBuilder) WithDescription(description string) *SkillBuilder {
	b.dict.Description = description
	return b
}

func (b *SkillBuilder) WithoutRubrics() *SkillBuilder {
	b.dict.Rubrics = []entities.RubricDict{}
	return b
}

func (b *SkillBuilder) WithNextMisconceptionID(id int) *SkillBuilder {
	b.dict.NextMisconceptionID = id
	return b
}

// Dict returns the backend dict the builder describes
func (b *SkillBuilder) Dict() aggregates.SkillDict {
	return b.dict
}

// Build creates the skill, panicking on invalid input
func (b *SkillBuilder) Build() *aggregates.Skill {
	s, err := aggregates.NewSkillFromBackendDict(b.dict)
	if err != nil {
		panic(err)
	}
	return s
}

// MisconceptionDict returns the default misconception dict for id
func MisconceptionDict(id string) entities.MisconceptionDict {
	return entities.MisconceptionDict{
		ID:              id,
		Name:            "test name",
		Notes:           "test notes",
		Feedback:        "test feedback",
		MustBeAddressed: true,
	}
}

// WorkedExample returns worked example n with content ids
// worked_example_q_n and worked_example_e_n
func WorkedExample(n int) entities.WorkedExample {
	suffix := strconv.Itoa(n)
	return entities.NewWorkedExample(
		valueobjects.MustSubtitledHTML("worked example question "+suffix, "worked_example_q_"+suffix),
		valueobjects.MustSubtitledHTML("worked example explanation "+suffix, "worked_example_e_"+suffix),
	)
}
