// compileinfoprint is imported by chipqc tools for the side effect of printing
// the compileinfo to os.StdErr at startup
package compileinfoprint

import "github.com/carbocation/chipqc/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
