// Package ecs implements the core of a general-purpose entity-component-system
// runtime: entity identity, archetype-based component storage, a parameterized
// query engine, and a phase/pool system scheduler.
//
// Graphics, windowing, scripting, and asset loading are external collaborators;
// this package only sees them as resources registered in a Container and as
// systems registered with a Scheduler.
package ecs
