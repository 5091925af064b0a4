/*
Package surveyload fetches the Mental Health & Wellbeing survey export from
KoboToolbox and bulk-loads it into PostgreSQL, replacing the destination table
contents on every run.

The pipeline is a single linear sequence: an authenticated HTTP GET retrieves
a semicolon-delimited CSV, headers are normalized, a static column mapping
selects the persisted columns, the destination table is dropped and recreated,
and all rows are inserted as one batched statement.

# Usage

Configuration comes from the process environment (a .env file is honored by
the CLI):

	cfg, err := surveyload.ConfigFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	p, err := surveyload.New(cfg, surveyload.WithPrettyLogging())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build pipeline")
	}

	if err := p.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("survey load failed")
	}

Export settings configured for XLS output can be loaded with the XLS parser:

	p, err := surveyload.New(cfg, surveyload.WithParser(surveyload.XLSParser(0)))
*/
package surveyload
