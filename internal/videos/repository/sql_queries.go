package repository

const (
	createVideoQuery = `INSERT INTO videos (original_filename, stored_path, size_bytes, duration_sec, mime_type)
					VALUES ($1, $2, $3, $4, $5) RETURNING *`
	getVideoByIDQuery = `SELECT video_id, original_filename, stored_path, size_bytes, duration_sec, mime_type, uploaded_at
					FROM videos WHERE video_id = $1`
	getVideosQuery = `SELECT video_id, original_filename, stored_path, size_bytes, duration_sec, mime_type, uploaded_at
					FROM videos ORDER BY uploaded_at DESC OFFSET $1 LIMIT $2`
	getTotalVideosQuery   = `SELECT COUNT(video_id) FROM videos`
	updateVideoProbeQuery = `UPDATE videos SET duration_sec = $1, size_bytes = $2 WHERE video_id = $3`

	createVariantQuery = `INSERT INTO video_variants (video_id, kind, quality, source_variant_id, stored_path, size_bytes, duration_sec, config_json)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING *`
	getVariantByIDQuery = `SELECT variant_id, video_id, kind, quality, source_variant_id, stored_path, size_bytes, duration_sec, created_at, config_json
					FROM video_variants WHERE variant_id = $1`
	getVariantsByVideoQuery = `SELECT variant_id, video_id, kind, quality, source_variant_id, stored_path, size_bytes, duration_sec, created_at, config_json
					FROM video_variants WHERE video_id = $1 ORDER BY created_at DESC`

	createOverlayQuery = `INSERT INTO overlays (video_id, variant_id, type, payload_json)
					VALUES ($1, $2, $3, $4) RETURNING *`
)
