package model

// UserData holds the normalized relationship sets for one analyzed user.
// It is immutable once loaded; the owning analyzer reads it but never
// modifies it after graph construction.
type UserData struct {
	Followers    *Set
	Following    *Set
	LikedAuthors *Tally
	StoryAuthors *Tally
}

// NewUserData creates an empty data record.
func NewUserData() *UserData {
	return &UserData{
		Followers:    NewSet(),
		Following:    NewSet(),
		LikedAuthors: NewTally(),
		StoryAuthors: NewTally(),
	}
}

// MutualFollows returns the identifiers present in both the followers
// and following sets.
func (d *UserData) MutualFollows() *Set {
	return d.Followers.Intersect(d.Following)
}

// TotalInteractions returns the sum of all liked-post and story-like counts.
func (d *UserData) TotalInteractions() int {
	return d.LikedAuthors.Total() + d.StoryAuthors.Total()
}

// Empty reports whether the record carries no usable data at all.
func (d *UserData) Empty() bool {
	return d.Followers.Len() == 0 && d.Following.Len() == 0 &&
		d.LikedAuthors.Len() == 0 && d.StoryAuthors.Len() == 0
}
