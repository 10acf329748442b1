package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yaoapp/kun/exception"

	"github.com/yaoapp/mongoverify/config"
	"github.com/yaoapp/mongoverify/serializer"
	"github.com/yaoapp/mongoverify/share"
)

var envFile string
var configFile string

var lang = os.Getenv("MONGOVERIFY_LANG")
var langs = map[string]string{
	"Verify captured documents":             "校验捕获的文档",
	"One or more arguments are not correct": "参数错误",
	"Environment file":                      "指定环境变量文件",
	"Configuration file":                    "指定配置文件",
	"Show configure":                        "显示配置信息",
	"Show version":                          "显示当前版本号",
	"Print all version information":         "显示全部版本信息",
	"Validate a document against rules":     "按规则校验文档",
	"Document file":                         "文档文件",
	"Rules file":                            "规则文件",
	"List operations and validation types":  "列出操作与校验类型",
	"Fatal: %s":                             "失败: %s",
	"✨DONE✨":                                "✨完成✨",
}

// L 多语言切换
func L(words string) string {
	if lang == "" {
		return words
	}

	if trans, has := langs[words]; has {
		return trans
	}
	return words
}

var rootCmd = &cobra.Command{
	Use:           share.BUILDNAME,
	Short:         L("Verify captured documents"),
	Long:          L("Verify captured documents"),
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("%s %v", L("One or more arguments are not correct"), args)
		}
		return cmd.Help()
	},
}

// 加载命令
func init() {
	rootCmd.AddCommand(
		versionCmd,
		inspectCmd,
		validateCmd,
		kindsCmd,
	)
	rootCmd.PersistentFlags().StringVarP(&envFile, "env", "e", "", L("Environment file"))
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", L("Configuration file"))
}

// Execute 运行Root
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString(L("Fatal: %s"), err.Error()))
		os.Exit(1)
	}
}

// Boot 设定配置
func Boot() {
	if envFile != "" {
		config.Conf = config.LoadFrom(envFile)
	}

	if configFile != "" {
		cfg, err := config.LoadYAML(config.Conf, configFile)
		if err != nil {
			exception.New("Config error %s", 500, err.Error()).Throw()
		}
		config.Conf = cfg
	}

	config.SetLogger(config.Conf)
	serializer.Reset()
}
