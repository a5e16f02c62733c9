package domain

// ChannelType is the derived category of a conversation, used for
// filtering and operator policy. It is never stored locally; it is
// recomputed from the two member roles whenever a channel is created.
type ChannelType string

const (
	ChannelStudentInstructor    ChannelType = "student_instructor"
	ChannelStudentStudent       ChannelType = "student_student"
	ChannelInstructorInstructor ChannelType = "instructor_instructor"
)

// ResolveChannelType maps two member roles to a channel type. The result
// is symmetric: same roles yield the matching peer type, mixed roles
// always yield student_instructor.
func ResolveChannelType(a, b Role) ChannelType {
	if a == b {
		return ChannelType(string(a) + "_" + string(a))
	}
	return ChannelStudentInstructor
}

// PeerChannelType returns the same-role channel type for a role, used
// when filtering a user's peer conversations.
func PeerChannelType(r Role) ChannelType {
	return ResolveChannelType(r, r)
}

// MetadataKeyChannelType is the channel metadata key the platform filter
// queries match against.
const MetadataKeyChannelType = "channelType"
