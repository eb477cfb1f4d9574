// Package reminder implements the due-task reminder scheduler: a daily
// cron-driven scan over stored tasks that dispatches at most one email per
// task per calendar day. The scan also runs once at startup so reminders are
// not lost when the process was down at the scheduled time.
package reminder
