/*
Package domain contains the core models of the SIMPLETS terminal.

It defines the vocabulary shared by the command table, the console state
machine and the presentation adapters. This package is kept pure and free
of external dependencies like I/O or terminal handling.

# Key Entities

  - State: the session settings a command can change (Language, Theme, Video).
  - Line: one entry of the terminal transcript (welcome, prompt, response).
  - Key: a single key press fed to the console.
  - Event: a structural description of what the host should render or do.
*/
package domain
