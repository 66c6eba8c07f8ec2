package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// and how to interpret results.

func describeListCallLogs() string {
	return `Lists reviewed call records from the call-logs API, newest first.

USE WHEN:
- Inspecting individual calls behind an aggregate number
- Finding a specific staff member's recent calls
- Checking which calls were left unscored

INTERPRETING RESULTS:
- normalized is the score converted to a 10-point scale; raw_score is as reviewed
- Reviewers use 10, 13, and 16 point rubrics; compare normalized values, not raw ones
- scored=false means the call was reviewed but not graded (N/A); it is excluded from averages
- band: good (>=8), fair (>=6), poor (>=4), critical (<4)
- key addresses a record for follow-up queries; it is the upstream id when one exists

METRICS RETURNED:
- total: matching records before the limit was applied
- logs: key, datetime, staff, raw_score, normalized, scored, band per record`
}

func describeSummarizeScores() string {
	return `Computes the headline quality numbers for a set of calls: highest scorer, lowest scorer, and team average.

USE WHEN:
- Answering "how did the team do today/this week"
- Comparing a date range against another
- Checking whether low scores come from one call or a pattern

INTERPRETING RESULTS:
- average is the mean of normalized 10-point scores, rounded to one decimal
- Unscored (N/A) calls never count toward average, top, or bottom
- scored=0 with unscored>0 means calls exist but none were graded
- by_scale averages raw numerators within each rubric (e.g. 11.2 on the 13-point scale), never mixing rubrics

METRICS RETURNED:
- average, scored, unscored
- top and bottom records with their normalized scores
- by_scale: per-rubric average when requested`
}

func describeStaffPerformance() string {
	return `Ranks staff members by their average normalized call score.

USE WHEN:
- Identifying who needs coaching and who is a model performer
- Preparing a team review with per-person numbers
- Checking whether one person drags a team average down

INTERPRETING RESULTS:
- average is per-staff mean on the normalized 10-point scale
- calls counts only scored calls; a staff member with no scored calls does not appear
- Small call counts make averages noisy; weigh calls before comparing people
- Sorted by average descending, name ascending on ties

METRICS RETURNED:
- staff: name, average, calls per staff member`
}

func describeScoreTrend() string {
	return `Fits a linear trend over daily average scores.

USE WHEN:
- Checking whether quality is improving or declining over time
- Quantifying the effect of a training or process change
- Spotting days that fall far off the trend line

INTERPRETING RESULTS:
- slope is score change per day on the 10-point scale; positive means improving
- r_squared near 1 means the trend explains most day-to-day variation; near 0 means noise
- Statistics are zero when fewer than two days have scored calls
- Each point carries its call count; thin days are less reliable

METRICS RETURNED:
- points: date, average, calls per day
- slope, intercept, r_squared, correlation`
}
