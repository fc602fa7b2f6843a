// Package lox implements the front end of a small Lox-style scripting
// language: a scanner that turns source text into tokens and a recursive
// descent parser for expressions.
//
// The scanner recognizes:
//   - Punctuation ( ) { } , . - + ; * / and the operators ! != = == > >= < <=.
//   - Number literals (123, 4.5), string literals in double quotes, and
//     identifiers made of ASCII letters, digits and underscores.
//   - The keywords and, class, else, false, fun, for, if, nil, or, print,
//     return, super, this, true, var and while.
//   - Line comments (//) and nestable block comments (/* ... */).
//
// Lexical problems do not stop the scanner; they come back as tokens whose
// type reports IsError. The parser accepts equality, comparison, arithmetic,
// unary and grouping expressions over literals and reports the first
// problem as an *Error.
package lox
