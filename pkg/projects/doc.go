// Package projects holds the registry of tracked projects and the dependency
// graph between them.
//
// A [Project] is one npm package developed on one release line (a branch
// track such as "master" or "v1"). The same package may appear once per
// release line; [Project.Key] identifies it as "name@line". Dependencies name
// other projects in the registry and may pin the release line they were
// built against.
//
// [Default] returns the built-in RokuCommunity registry. [Load] and [Parse]
// read a registry from TOML:
//
//	[[project]]
//	name = "brighterscript"
//	owner = "rokucommunity"
//	repository = "brighterscript"
//	dependencies = [{ name = "roku-deploy" }]
//
// Registries are validated on construction: keys are unique, every
// dependency resolves, and the graph has no cycles. [Registry.ReleaseOrder]
// groups projects into tiers where each tier only depends on earlier tiers,
// which is the order releases have to go out in.
package projects
