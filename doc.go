/*
Package simplets is a retro terminal experience for the SIMPLETS project.

A console accepts typed commands and answers with Markdown, character pair
artwork or modal menus. Two front ends drive it: a full-screen terminal with
animated wave bands and raw key handling, and a line mode for pipes and
scripts with optional NDJSON framing.

The core lives under pkg:

  - console: prompt editing, history, menus and the transcript
  - commands: the command registry and the built-in commands
  - i18n: the English and German catalogs
  - pairart: character pair artwork and its SVG export
  - wave: the animated side bands
  - boot: the loading screen timeline
  - runner: the line loop and its text and JSON handlers

The simplets command in cmd/simplets wires them together.
*/
package simplets
