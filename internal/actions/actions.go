// Package actions synthesizes the "next action" suggestion graph attached to
// every response: a bounded list of follow-up commands, each valid input to
// this same command surface, referencing concrete values from the completed
// operation.
package actions

import "fmt"

// MaxEntitySuggestions caps suggestion lists derived from variable-length
// result sets so response size stays bounded.
const MaxEntitySuggestions = 5

// Param describes a parameter the suggested command still needs from the
// caller.
type Param struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Required    bool     `json:"required"`
	Enum        []string `json:"enum,omitempty"`
}

// NextAction is one templated follow-up command.
type NextAction struct {
	Command string  `json:"command"`
	Label   string  `json:"label"`
	Params  []Param `json:"params,omitempty"`
}

// New builds a suggestion from a command template and a human label.
func New(command, label string) NextAction {
	return NextAction{Command: command, Label: label}
}

// WithParam appends a parameter descriptor and returns the suggestion.
func (a NextAction) WithParam(p Param) NextAction {
	a.Params = append(a.Params, p)
	return a
}

// ForPing suggests generic exploratory follow-ups; a connectivity check has
// no entity-specific continuation.
func ForPing() []NextAction {
	return []NextAction{
		New("lowmain schema", "Explore database structure"),
		New("lowmain query", "Execute a Cypher query").
			WithParam(Param{Name: "cypher", Description: "Cypher query to run", Required: true}),
		New("lowmain node find", "Find nodes by label").
			WithParam(Param{Name: "--label", Description: "Node label to search", Required: true}),
	}
}

// ForNodeFind suggests inspecting up to MaxEntitySuggestions of the found
// nodes plus creating another node with the same label.
func ForNodeFind(label string, nodeIDs []int64) []NextAction {
	ids := nodeIDs
	if len(ids) > MaxEntitySuggestions {
		ids = ids[:MaxEntitySuggestions]
	}

	out := make([]NextAction, 0, len(ids)+1)
	for _, id := range ids {
		out = append(out, New(
			fmt.Sprintf("lowmain node get %d", id),
			fmt.Sprintf("Get node %d details", id),
		))
	}

	out = append(out, New(
		fmt.Sprintf("lowmain node create --label=%s", label),
		fmt.Sprintf("Create a new %s node", label),
	).WithParam(Param{Name: "--props", Description: "JSON properties", Required: true}))

	return out
}

func ForNodeGet(id int64) []NextAction {
	return []NextAction{
		New(fmt.Sprintf("lowmain node update %d", id), "Update this node").
			WithParam(Param{Name: "--set", Description: "JSON properties to set", Required: true}),
		New(fmt.Sprintf("lowmain node delete %d", id), "Delete this node"),
		New(fmt.Sprintf("lowmain rel find --from=%d", id), "Find outgoing relationships"),
		New(fmt.Sprintf("lowmain rel find --to=%d", id), "Find incoming relationships"),
		New(fmt.Sprintf("lowmain rel create --from=%d", id), "Create relationship from this node").
			WithParam(Param{Name: "--to", Description: "Target node ID", Required: true}).
			WithParam(Param{Name: "--type", Description: "Relationship type", Required: true}),
	}
}

func ForNodeCreate(id int64, label string) []NextAction {
	return []NextAction{
		New(fmt.Sprintf("lowmain node get %d", id), "View created node"),
		New(fmt.Sprintf("lowmain rel create --from=%d", id), "Create relationship from this node").
			WithParam(Param{Name: "--to", Description: "Target node ID", Required: true}).
			WithParam(Param{Name: "--type", Description: "Relationship type", Required: true}),
		New(fmt.Sprintf("lowmain node find --label=%s", label), fmt.Sprintf("Find all %s nodes", label)),
	}
}

func ForNodeUpdate(id int64) []NextAction {
	return []NextAction{
		New(fmt.Sprintf("lowmain node get %d", id), "View updated node"),
		New(fmt.Sprintf("lowmain node delete %d", id), "Delete this node"),
	}
}

func ForNodeDelete() []NextAction {
	return []NextAction{
		New("lowmain schema", "Explore database structure"),
		New("lowmain node find", "Find nodes").
			WithParam(Param{Name: "--label", Description: "Node label", Required: true}),
	}
}

func ForRelFind() []NextAction {
	return []NextAction{
		New("lowmain rel create", "Create a relationship").
			WithParam(Param{Name: "--from", Description: "Source node ID", Required: true}).
			WithParam(Param{Name: "--to", Description: "Target node ID", Required: true}).
			WithParam(Param{Name: "--type", Description: "Relationship type", Required: true}),
		New("lowmain schema types", "View relationship types"),
	}
}

func ForRelCreate(fromID, toID, relID int64) []NextAction {
	return []NextAction{
		New(fmt.Sprintf("lowmain node get %d", fromID), "View source node"),
		New(fmt.Sprintf("lowmain node get %d", toID), "View target node"),
		New(fmt.Sprintf("lowmain rel delete %d", relID), "Delete this relationship"),
	}
}

func ForRelDelete() []NextAction {
	return []NextAction{
		New("lowmain rel find", "Find relationships"),
		New("lowmain schema types", "View relationship types"),
	}
}

func ForQueryRead() []NextAction {
	return []NextAction{
		New("lowmain query", "Run another query").
			WithParam(Param{Name: "cypher", Required: true}),
		New("lowmain schema", "Explore database structure"),
	}
}

func ForQueryWrite() []NextAction {
	return []NextAction{
		New("lowmain schema", "Check schema after mutation"),
		New("lowmain query", "Run another query").
			WithParam(Param{Name: "cypher", Required: true}),
	}
}

// ForSchemaLabels suggests a find per discovered label.
func ForSchemaLabels(labels []string) []NextAction {
	out := make([]NextAction, 0, len(labels))
	for _, l := range labels {
		out = append(out, New(
			fmt.Sprintf("lowmain node find --label=%s", l),
			fmt.Sprintf("Find %s nodes", l),
		))
	}
	return out
}

// ForSchemaTypes suggests a relationship find per discovered type.
func ForSchemaTypes(types []string) []NextAction {
	out := make([]NextAction, 0, len(types))
	for _, t := range types {
		out = append(out, New(
			fmt.Sprintf("lowmain rel find --type=%s", t),
			fmt.Sprintf("Find %s relationships", t),
		))
	}
	return out
}

func ForSchemaIndexes() []NextAction {
	return []NextAction{New("lowmain schema constraints", "View constraints")}
}

func ForSchemaConstraints() []NextAction {
	return []NextAction{New("lowmain schema indexes", "View indexes")}
}

func ForSchemaCount() []NextAction {
	return []NextAction{
		New("lowmain schema labels", "View labels"),
		New("lowmain schema types", "View relationship types"),
	}
}

// ForSchemaOverview combines per-label finds with create and raw-query
// suggestions; the create suggestion enumerates the known labels as allowed
// values.
func ForSchemaOverview(labels []string) []NextAction {
	out := ForSchemaLabels(labels)

	out = append(out, New("lowmain node create", "Create a new node").
		WithParam(Param{Name: "--label", Description: "Node label", Required: true, Enum: labels}).
		WithParam(Param{Name: "--props", Description: "JSON properties", Required: true}))

	out = append(out, New("lowmain query", "Execute a Cypher query").
		WithParam(Param{Name: "cypher", Required: true}))

	return out
}
