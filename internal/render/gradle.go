package render

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/go-descriptor/internal/models"
)

var gradleRepositories = map[string]string{
	"maven-central":        "mavenCentral()",
	"google":               "google()",
	"gradle-plugin-portal": "gradlePluginPortal()",
	"maven-local":          "mavenLocal()",
}

var gradleEngines = map[string]string{
	models.EngineJUnitPlatform: "useJUnitPlatform()",
	models.EngineJUnit:         "useJUnit()",
	models.EngineTestNG:        "useTestNG()",
}

var kotlinEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func kotlinString(s string) string {
	return `"` + kotlinEscaper.Replace(s) + `"`
}

// gradleRepository maps a repository name to its Kotlin DSL call. Anything
// unknown is treated as a repository URL.
func gradleRepository(name string) string {
	if call, ok := gradleRepositories[name]; ok {
		return call
	}
	return fmt.Sprintf("maven(%s)", kotlinString(name))
}

// gradleDependency writes a dependency the way it was declared, so managed
// libraries stay unversioned and platforms are wrapped in platform().
func gradleDependency(c models.Coordinate) string {
	notation := c.String()
	if c.ManagedBy != "" {
		notation = c.Key()
	}

	arg := kotlinString(notation)
	if c.IsPlatform() {
		arg = "platform(" + arg + ")"
	}

	configuration := "implementation"
	if c.Scope == models.ScopeTest {
		configuration = "testImplementation"
	}

	return configuration + "(" + arg + ")"
}

func gradleEngine(name string) string {
	if call, ok := gradleEngines[name]; ok {
		return call
	}
	return fmt.Sprintf("useJUnitPlatform { includeEngines(%s) }", kotlinString(name))
}
