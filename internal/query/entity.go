// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package query

import "strings"

// SystemEntityPrefix is the reserved prefix that marks system entity types.
const SystemEntityPrefix = "sys:"

// Entity is the payload attached to an annotated span: the entity type, an
// optional role, the resolved value, display text, and an optional
// confidence score. An entity is owned by exactly one QueryEntity and is
// immutable once construction is complete.
type Entity struct {
	Type        string
	Role        string
	Value       interface{}
	DisplayText string
	Confidence  *float64
}

// NewEntity creates an entity of the given type. Optional fields are set
// with the With* methods during construction.
func NewEntity(entityType string) *Entity {
	return &Entity{Type: entityType}
}

// WithRole sets the entity's role.
func (e *Entity) WithRole(role string) *Entity {
	e.Role = role
	return e
}

// WithValue sets the entity's resolved value.
func (e *Entity) WithValue(value interface{}) *Entity {
	e.Value = value
	return e
}

// WithDisplayText sets the human readable representation of the entity.
func (e *Entity) WithDisplayText(text string) *Entity {
	e.DisplayText = text
	return e
}

// WithConfidence sets the entity's confidence score.
func (e *Entity) WithConfidence(confidence float64) *Entity {
	e.Confidence = &confidence
	return e
}

// IsSystemEntity reports whether the entity type carries the reserved
// system prefix.
func (e *Entity) IsSystemEntity() bool {
	return strings.HasPrefix(e.Type, SystemEntityPrefix)
}

// ToDict converts the entity into a serializable map projection. The
// confidence key is present only when a confidence was assigned.
func (e *Entity) ToDict() map[string]interface{} {
	base := map[string]interface{}{
		"type":         e.Type,
		"role":         e.Role,
		"value":        e.Value,
		"display_text": e.DisplayText,
	}
	if e.Confidence != nil {
		base["confidence"] = *e.Confidence
	}
	return base
}
