package css

// Serializer turns selector nodes into some output datum. Node.Serialize only
// dispatches to the entry point matching its shape, serializer is responsible
// for descending into children (usually by calling Serialize on them).
type Serializer interface {
	SerializeSimple(s *Simple) (any, error)
	SerializeCombined(c *Combined) (any, error)
	SerializeGroup(g *Group) (any, error)
}
