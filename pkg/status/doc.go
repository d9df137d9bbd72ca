// Package status works out which registry projects need a release.
//
// A [Collector] fetches, for every project, the package.json on its branch,
// its latest GitHub release, the package.json shipped with that release and
// the commits made since. It then compares each dependency version a project
// was released with against the dependency's current version.
//
// A project needs a release when it has unreleased commits, when one of its
// dependencies has moved on, or when it was never released.
package status
