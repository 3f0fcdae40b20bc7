package storage

// GetCommentsParams filters a comment listing. A nil PostID lists comments of all posts.
type GetCommentsParams struct {
	PostID *int64
}

func (p GetCommentsParams) ByPost(postID int64) bool {
	return p.PostID == nil || *p.PostID == postID
}
