/*
Package relaunch lets an executable patch its own icon resources.

A running image cannot rewrite its backing file, so the work is split over
three processes that hand off through argv tokens:

	app.exe                                   (hop 1: copy self, spawn worker)
	app.exe.81273.exe --icopatch:SetIcon SetIcon app.exe
	                                          (hop 2: patch app.exe, spawn cleaner)
	app.exe --icopatch:SetIcon Delete app.exe.81273.exe
	                                          (hop 3: delete the worker copy)

Each hop is one Orchestrator.Run call. Hops never wait on each other; a
fixed settle delay before each step gives the previous process time to
exit and release its image.

# States

	Initial ─┬─ marker alone ──────────► SpawningWorker ──────────────► Done
	         ├─ <marker> <Op> <path> ──► WorkerPerformingOperation
	         │                             └► WorkerRequestingCleanup ─► Done
	         ├─ <marker> Delete <path> ► CleaningUp ──────────────────► Done
	         └─ malformed ────────────────────────────────────────────► Done

A failed patch still advances to WorkerRequestingCleanup so the temporary
copy is always removed.
*/
package relaunch
