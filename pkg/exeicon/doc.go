/*
Package exeicon provides one-call icon operations on Windows executables.

# Quick Start

Replace the primary icon of an executable:

	err := exeicon.SetIcon("app.exe", "app.ico", nil)

Add a second icon group without touching the existing ones:

	id, err := exeicon.AddIcon("app.exe", "extra.ico", nil)

Strip every icon resource:

	n, err := exeicon.RemoveIcons("app.exe", nil)

# Identifier Layout

SetIcon writes the RT_GROUP_ICON record at id 1 and the images at ids
2..N+1. AddIcon looks for the first run of N+1 ids used by neither resource
kind and writes the group at the start of that run and the images after it.
RemoveIcons deletes both kinds at every id below the scan ceiling
(rsrc.DefaultScanCeiling unless configured).

# Options

A nil *Options means DefaultOptions(). Set DryRun to run the whole
operation against a session that is discarded instead of committed, and
CreateBackup to copy the executable to <exe>.bak first.
*/
package exeicon
