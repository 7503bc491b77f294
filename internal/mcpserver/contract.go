package mcpserver

// RichTextFormatContract describes the JSON format of card records and their
// rich text descriptions for LLM consumers adding cards.
const RichTextFormatContract = `# Hemolymph Rich Text Format

A card description is a JSON array of elements, read left to right.

## Elements

| JSON | Meaning |
|---|---|
| ` + "`" + `{"String": "text"}` + "`" + ` or ` + "`" + `"text"` + "`" + ` | Plain text. A newline starts a new paragraph. |
| ` + "`" + `"LineBreak"` + "`" + ` | Forces a paragraph break. |
| ` + "`" + `{"CardId": {"display": "Mantis", "identity": ...}}` + "`" + ` | Mentions a card. Shown as plain text; identity is kept as-is. |
| ` + "`" + `{"SpecificCard": {"display": "Lost Man", "id": "lost-man"}}` + "`" + ` | Link to the page of card ` + "`" + `id` + "`" + `. |
| ` + "`" + `{"CardSearch": {"display": "an ant", "search": "k:ant"}}` + "`" + ` | Link that runs the search ` + "`" + `search` + "`" + `. |
| ` + "`" + `{"Saga": [[...], [...]]}` + "`" + ` | Numbered list. Each item is itself a description array. |

## Rules

1. Links and card mentions stay inside the paragraph they appear in.
2. A Saga always stands in a paragraph of its own.
3. Empty lines inside text are dropped.
4. Sagas may nest, up to 16 levels deep.
5. Any other tag makes the whole card invalid.

## Card record

` + "```" + `json
{
  "id": "vampire-mantis",
  "name": "Vampire Mantis",
  "type": "creature",
  "cost": 3,
  "health": 2,
  "defense": 1,
  "power": 4,
  "kins": ["mantis"],
  "keywords": ["ambush"],
  "description": [
    {"String": "When this enters, choose one:"},
    {"Saga": [
      [{"String": "Devour "}, {"CardSearch": {"display": "an ant", "search": "k:ant"}}, {"String": "."}],
      [{"String": "Return "}, {"SpecificCard": {"display": "Lost Man", "id": "lost-man"}}, {"String": " to your hand."}]
    ]}
  ],
  "flavor_text": "It prays.",
  "images": [{"name": "Vampire Mantis", "authors": ["Ana"]}]
}
` + "```" + `

` + "`" + `id` + "`" + ` and ` + "`" + `name` + "`" + ` are required; ` + "`" + `cost` + "`" + ` may not be negative.
Types containing "command" have no stats; types containing "blood flask" have no cost.
`
