// Command discern identifies audio discs and video files against public
// media catalogs and reconciles measured file durations with the canonical
// track listing of an identified release.
package main
