// Package view turns page markup into something a terminal can draw.
//
// Parse reads the markup with goquery; Render walks it and produces logical
// lines made of styled segments. Block elements start new lines, inline
// elements continue the current one. Elements carrying data-action become
// numbered actions the shell can select and activate, with the line they
// were drawn on so the viewport can scroll to them.
//
// Two page-scoped decorations are applied while walking: only the active
// hero slide is drawn, and .animate-in blocks that have not been revealed
// yet are marked Dim. Their line spans are returned as Blocks so the shell
// can report which ones scrolled into view.
package view
