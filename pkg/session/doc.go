/*
Package session implements session management and persistence orchestration.

A session is a dialogue paused between host requests: the id of its tree plus
a context snapshot. The Manager serializes access per session id (in-process
mutexes, optionally a DistributedLocker across replicas) and runs each step as
load, resume, step, save.
*/
package session
