// Package cli implements the interactive CreationHub terminal front end.
//
// It reads commands line by line, prompts for whatever a command is missing
// and turns user input into coordinator and session calls. Sentinel errors
// coming back are rendered as short messages; the loop keeps running.
//
// Commands available while logged out:
//
//	signup, trial, login, recover, help, exit
//
// Commands available while logged in:
//
//	logout, whoami, passwd, ban,
//	new, addevent, rmevent, editevent, rename, privacy, delete, mine, browse, view,
//	send, reply, inbox, read, thread, rmmsg, attach,
//	help, exit
package cli
