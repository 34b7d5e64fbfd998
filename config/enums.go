package config

// Representation used when printing parsed selectors.
// ENUM(debug, css, tree, yaml)
type OutputFormat int
