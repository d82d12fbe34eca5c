// Package health serves liveness, readiness and version endpoints.
//
// Liveness only says the process is up. Readiness runs the registered
// checks, typically the last result of the scheduled Groq probe:
//
//	checker := health.New(cfg.Telemetry.Health.CheckTimeout)
//	checker.RegisterCheck("groq", prober.Status)
//
//	r.Get("/health/live", checker.LivenessHandler())
//	r.Get("/health/ready", checker.ReadinessHandler())
//	r.Get("/version", health.VersionHandler(health.NewVersionInfo(version, commit, date)))
//
// A readiness response looks like:
//
//	{
//	    "status": "unhealthy",
//	    "checks": {
//	        "groq": {"status": "unhealthy", "message": "...", "critical": true, "duration_ms": 0.02}
//	    },
//	    "timestamp": "2026-01-01T10:30:00Z"
//	}
//
// Method filtering is left to the router that mounts the handlers.
package health
