package cache

// Key builders for every cached resource. The exact strings are load-bearing:
// they must match what earlier deployments wrote, so a rolling upgrade keeps
// hitting the same entries.

// AlbumKey caches a single album. Evicted on edit, delete and cover upload.
func AlbumKey(albumID string) string {
	return "album:" + albumID
}

// AlbumSongsKey caches the song list of an album. Evicted when a song is
// created under that album.
func AlbumSongsKey(albumID string) string {
	return "albumSongs:" + albumID
}

// SongKey caches a single song. Evicted on edit and delete, not on creation.
func SongKey(songID string) string {
	return "song:" + songID
}

// PlaylistsKey caches the playlists owned by a user. Evicted when the owner
// adds or deletes a playlist.
func PlaylistsKey(ownerID string) string {
	return "playlists:" + ownerID
}

// PlaylistKey caches a single playlist. The capital P is historical; entries
// with this casing already exist, so it stays.
func PlaylistKey(playlistID string) string {
	return "Playlist:" + playlistID
}

// PlaylistSongsKey caches the songs inside a playlist. Evicted when a song
// is added to or removed from the playlist.
func PlaylistSongsKey(playlistID string) string {
	return "songsFromPlaylist:" + playlistID
}

// LikesKey caches an album's like count. Evicted on every like toggle.
func LikesKey(albumID string) string {
	return "likes:" + albumID
}
