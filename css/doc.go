// Package css models CSS selector syntax as a tree and parses selector text
// into it.
//
// # Node types
//
//   - Simple: element name (or "*") with ids, classes, attribute matchers and
//     pseudo-classes/elements: div#main.wide[lang]:hover
//   - Combined: two selectors joined by a combinator: ul > li, h1 + p, div span
//   - Group: comma separated alternatives sharing one ruleset: h1, h2 > em
//
// Combined selectors are built left-associative by the parser, so "a b > c" is
// Child(Descendant(a, b), c).
//
// # Combinators
//
// Combinator is a closed enumeration (descendant, child, adjacent).
// ResolveCombinator accepts both canonical names and literal tokens
// (" ", ">", "+") and always returns the canonical value, so combinators can be
// compared directly.
//
// # Output
//
// Every node has String() producing stable debug text, for example
//
//	Combined(Simple('ul'), Simple('li', classes=['item']), combinator=">")
//
// Any other output is produced by a Serializer (see package css/serialize),
// nodes only dispatch to it.
package css
