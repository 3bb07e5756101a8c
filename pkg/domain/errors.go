package domain

import "errors"

// ErrEmptyCommand is returned when a blank line is dispatched.
var ErrEmptyCommand = errors.New("empty command")

// ErrUnknownCommand is returned when the input matches no entry of the command table.
var ErrUnknownCommand = errors.New("command not found")

// ErrInvalidLanguage is returned when a language code is not in the supported set.
var ErrInvalidLanguage = errors.New("invalid language code")

// ErrInvalidTheme is returned when a theme name is neither dark nor light.
var ErrInvalidTheme = errors.New("invalid theme")

// ErrNoMenu is returned when a menu operation is attempted outside menu mode.
var ErrNoMenu = errors.New("no menu is open")

// ErrMenuOpen is returned when a line is submitted while a menu waits for a choice.
var ErrMenuOpen = errors.New("a menu is open")

// ErrBooting is returned when input reaches the console before the boot sequence ended.
var ErrBooting = errors.New("console is still booting")
