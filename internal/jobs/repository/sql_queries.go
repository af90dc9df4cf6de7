package repository

const (
	createJobQuery = `INSERT INTO jobs (video_id, input_variant_id, type, status, progress)
					VALUES ($1, $2, $3, 'PENDING', 0) RETURNING *`
	getJobByIDQuery = `SELECT job_id, video_id, input_variant_id, output_variant_id, type, status, progress, error_message, created_at, updated_at
					FROM jobs WHERE job_id = $1`
	getJobsByVideoQuery = `SELECT job_id, video_id, input_variant_id, output_variant_id, type, status, progress, error_message, created_at, updated_at
					FROM jobs WHERE video_id = $1 ORDER BY created_at DESC`

	// Transition guards live in the WHERE clauses: an UPDATE that matches
	// zero rows means the stored status forbids the move.
	markStartedQuery = `UPDATE jobs SET status = 'STARTED', updated_at = now()
					WHERE job_id = $1 AND status = 'PENDING'`
	setProgressQuery = `UPDATE jobs SET progress = $2, updated_at = now()
					WHERE job_id = $1 AND status = 'STARTED' AND progress <= $2`
	setOutputVariantQuery = `UPDATE jobs SET output_variant_id = $2, updated_at = now()
					WHERE job_id = $1 AND status = 'STARTED'`
	markSuccessQuery = `UPDATE jobs SET status = 'SUCCESS', progress = 100, updated_at = now()
					WHERE job_id = $1 AND status = 'STARTED'`
	markFailureQuery = `UPDATE jobs SET status = 'FAILURE', error_message = $2, output_variant_id = NULL, updated_at = now()
					WHERE job_id = $1 AND status IN ('PENDING', 'STARTED')`
)
