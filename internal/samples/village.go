// Package samples holds dialogue trees shared by tests, examples and the CLI demo.
package samples

import (
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/dsl"
)

// VillageTreeID identifies the village greeting tree.
const VillageTreeID = "village_greeting"

// Village returns a fresh copy of the village greeting tree.
// The "quest" choice is only offered while the quests_available flag is set.
func Village() *domain.Tree {
	b := dsl.New(VillageTreeID).
		Name("Village Greeting").
		Version("1.0.0").
		Var("player_name", "Traveler").
		Flag("quests_available")

	b.Add("start").
		Text("Hello, traveler! Welcome to our village.").
		Go("greeting_choice")

	b.Add("greeting_choice").
		Prompt("How would you like to respond?").
		Choice("friendly", "Hello! Nice to meet you.", "friendly_response").
		Choice("rude", "Whatever. Just tell me where the inn is.", "rude_response").
		Choice("quest", "I'm looking for work. Any quests available?", "quest_offer",
			dsl.If(dsl.HasFlag("quests_available")))

	b.Add("friendly_response").
		Text("You seem like a nice person! Let me show you around.").
		Do(dsl.SetFlag("friendly_reputation")).
		Go("end")

	b.Add("rude_response").
		Text("Well, the inn is down the street. Don't cause trouble.").
		Do(dsl.SetFlag("rude_reputation")).
		Go("end")

	b.Add("quest_offer").
		Text("Actually, we do have a problem with wolves in the forest.").
		Do(dsl.StartQuest("wolf_hunt")).
		Go("quest_details")

	b.Add("quest_details").
		Prompt("Would you like to help us?").
		Choice("accept", "I'll help you with the wolves.", "quest_accepted").
		Choice("decline", "Sorry, I'm not interested.", "quest_declined")

	b.Add("quest_accepted").
		Text("Thank you! Here's a map to the forest.").
		Do(dsl.AddItem("forest_map")).
		Go("end")

	b.Add("quest_declined").
		Text("I understand. Maybe another time.").
		Go("end")

	b.Add("end").End("Thank you for visiting our village!")

	return b.MustBuild()
}

// VillageWithoutQuests is Village with the quests_available flag cleared.
func VillageWithoutQuests() *domain.Tree {
	tree := Village()
	tree.Flags = domain.NewStringSet()
	return tree
}
