// Package querycache caches entity collections between mutations.
//
// Keys are only constructible through the typed builders below, so a
// mutation can only invalidate collections that actually exist; there is no
// string matching by convention anywhere in the codebase.
package querycache

import "fmt"

// Key identifies one cached collection
type Key string

// Courses is the key for the full course list
func Courses() Key {
	return "courses"
}

// Modules is the key for a course's module list
func Modules(courseID int64) Key {
	return Key(fmt.Sprintf("modules:%d", courseID))
}

// Videos is the key for a module's video list
func Videos(moduleID int64) Key {
	return Key(fmt.Sprintf("videos:%d", moduleID))
}

// Students is the key for the full student list
func Students() Key {
	return "students"
}

// StudentCourses is the key for the courses a profile is enrolled in
func StudentCourses(profileID int64) Key {
	return Key(fmt.Sprintf("student-courses:%d", profileID))
}

// CourseStudents is the key for the profiles enrolled in a course
func CourseStudents(courseID int64) Key {
	return Key(fmt.Sprintf("course-students:%d", courseID))
}
