// Package serialize contains css.Serializer implementations: CSS text, indented
// tree dump for troubleshooting and YAML documents.
package serialize
